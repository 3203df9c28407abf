package domain

import "github.com/m-mizutani/goerr/v2"

var (
	ErrConfiguration = goerr.New("configuration error")
	ErrDelivery      = goerr.New("message delivery failed")
	ErrEventDecode   = goerr.New("failed to decode callback event")
)
