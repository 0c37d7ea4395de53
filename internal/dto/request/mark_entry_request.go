package request

// MarkEntryRequest 入场登记
// PUT /requests/:id/enter
type MarkEntryRequest struct {
	EntryGate         string `json:"entry_gate" binding:"omitempty,max=50"`         // 入场闸口
	SecurityPersonnel string `json:"security_personnel" binding:"omitempty,max=50"` // 登记的安保人员
}
