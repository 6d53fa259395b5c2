package model

// HistoryEntry is one scanned barcode. Timestamp is Unix milliseconds.
type HistoryEntry struct {
	Barcode   string   `json:"barcode"`
	Timestamp int64    `json:"timestamp"`
	Product   *Product `json:"product,omitempty"`
}
