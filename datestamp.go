package sprout

import "time"

// DateStampLayout is the long-form US English date used for the page's
// date stamp, e.g. "March 7, 2025".
const DateStampLayout = "January 2, 2006"

// FormatDateStamp formats t for the date stamp.
func FormatDateStamp(t time.Time) string {
	return t.Format(DateStampLayout)
}
