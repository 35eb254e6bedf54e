package request

// NicknameRequest is the body for PUT /profile/nickname
type NicknameRequest struct {
	Nickname string `json:"nickname"`
}

// SettingRequest is the body for PUT /profile/settings/{key}
type SettingRequest struct {
	Value any `json:"value"`
}

// PurchaseRequest is the body for POST /shop/purchase
type PurchaseRequest struct {
	ItemID string `json:"item_id"`
}

// EquipRequest is the body for POST /shop/equip
type EquipRequest struct {
	ItemID string `json:"item_id"`
}

// JoinRoomRequest is the body for POST /arena/join
type JoinRoomRequest struct {
	Code string `json:"code"`
}

// ChatRequest is the body for POST /arena/chat
type ChatRequest struct {
	Text string `json:"text"`
}

// StartGameRequest is the body for POST /games/start
type StartGameRequest struct {
	GameID string `json:"game_id"`
}

// InputRequest is the body for POST /games/input
type InputRequest struct {
	Kind string `json:"kind"`
	Dir  string `json:"dir,omitempty"`
	Rune string `json:"rune,omitempty"`
	X    int    `json:"x,omitempty"`
	Y    int    `json:"y,omitempty"`
}
