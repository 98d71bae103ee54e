// Package ui provides the Bubble Tea interface for browsing the exercise
// catalog: filter and category navigation, exercise search, the detail
// overlay, favorites, ratings and the newsletter form.
package ui
