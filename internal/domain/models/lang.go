package models

// Lang is a bilingual text value. Every multilingual field in the CMS is
// persisted with both locale keys present, defaulting to "".
//
// The canonical locale key for Vietnamese is "vi". Older documents written
// with the drifted "vn" key are migrated on read by the coerce package.
type Lang struct {
	EN string `bson:"en" json:"en"`
	VI string `bson:"vi" json:"vi"`
}

// IsEmpty reports whether both locales are empty.
func (l Lang) IsEmpty() bool {
	return l.EN == "" && l.VI == ""
}
