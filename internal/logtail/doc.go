// Package logtail reads the end of the client log file and splits logrus
// text-format lines into their parts for display.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded by the requested window rather than the file size. A missing file
// is not an error: it yields no lines.
//
// Parse understands the key=value layout written by the logrus
// TextFormatter:
//
//	time="2024-03-01T10:00:00+01:00" level=warn msg="load favorite failed" id=64f error="Not Found (status 404)"
//
// Lines in any other shape are returned as a bare message so nothing is
// dropped from the view.
package logtail
