package models

// ChatTurn is one prior message of the conversation, oldest first.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatContext carries the caller's current booking-form state so the
// assistant can answer price questions and propose step navigation.
type ChatContext struct {
	Step           int         `json:"step"`
	Passengers     int         `json:"passengers"`
	VehicleID      string      `json:"vehicleId"`
	ServiceType    ServiceType `json:"serviceType"`
	PickupAddress  string      `json:"pickupAddress"`
	DropoffAddress string      `json:"dropoffAddress"`
	ServiceDate    string      `json:"serviceDate"`
	PickupTime     string      `json:"pickupTime"`
}

type ChatRequest struct {
	Message string      `json:"message"`
	History []ChatTurn  `json:"history"`
	Context ChatContext `json:"context"`
}

// ChatAction is an optional navigation proposal attached to a reply. The
// booking form's own guards decide whether it is honored.
type ChatAction struct {
	Type string `json:"type"`
	Step int    `json:"step,omitempty"`
}

type ChatReply struct {
	Reply  string      `json:"reply"`
	Action *ChatAction `json:"action,omitempty"`
}
