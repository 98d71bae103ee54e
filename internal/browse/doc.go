// Package browse owns the catalog view state: the active mode, filter,
// category, search keyword and page.
//
// Machine transitions never perform I/O. A transition that needs data
// returns a Request stamped with a generation number; the caller runs it
// through a Loader (or any other means) and hands the Result back to
// Machine.Apply, which drops results from superseded generations. View turns
// the current state into a renderable view-model with cards, breadcrumbs and
// pagination.
package browse
