package model

// SlotKey names one of the fixed document inputs of the upload form.
// The value doubles as the multipart field name sent to the remote API.
type SlotKey string

const (
	SlotProfilePhoto         SlotKey = "profilePhoto"
	SlotAadharCard           SlotKey = "aadharCard"
	SlotPanCard              SlotKey = "panCard"
	SlotTenthMarksheet       SlotKey = "tenthMarksheet"
	SlotTwelfthMarksheet     SlotKey = "twelfthMarksheet"
	SlotCompetitiveMarksheet SlotKey = "competitiveMarksheet"
)

// AcceptHint is the file-picker filter offered for every slot. It is advisory only.
const AcceptHint = ".jpg,.jpeg,.png,.pdf"

// Slot describes one document input as shown on the form.
type Slot struct {
	Key   SlotKey `json:"key"`
	Label string  `json:"label"`
	Group string  `json:"group,omitempty"`
}

// Slots is the catalog in declaration order. Completeness checks and the
// multipart payload both follow this order.
var Slots = []Slot{
	{Key: SlotProfilePhoto, Label: "Profile Photo"},
	{Key: SlotAadharCard, Label: "Aadhaar Card"},
	{Key: SlotPanCard, Label: "PAN Card"},
	{Key: SlotTenthMarksheet, Label: "10th Marksheet", Group: "Educational Certificates"},
	{Key: SlotTwelfthMarksheet, Label: "12th Marksheet", Group: "Educational Certificates"},
	{Key: SlotCompetitiveMarksheet, Label: "Competitive Marksheet", Group: "Educational Certificates"},
}

// LookupSlot returns the catalog entry for key.
func LookupSlot(key SlotKey) (Slot, bool) {
	for _, s := range Slots {
		if s.Key == key {
			return s, true
		}
	}
	return Slot{}, false
}

// File is a user-selected document held in memory until submission.
type File struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}
