package model

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

func SuccessFlash(msg string) *Flash {
	return &Flash{Kind: FlashSuccess, Message: msg}
}

func ErrorFlash(msg string) *Flash {
	return &Flash{Kind: FlashError, Message: msg}
}
