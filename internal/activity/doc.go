// Package activity tracks in-flight requests and the error area message.
//
// The Tracker mediates between client calls running on background goroutines
// and the UI's render loop, the same way a shared state store would: writers
// mark requests busy and record failure messages, the UI reads an immutable
// snapshot on each frame. A mutex-guarded counter replaces per-request
// booleans so overlapping requests keep the spinner up until the last one
// releases.
package activity
