package model

// SlackPayload represents the JSON payload for the Slack webhook
type SlackPayload struct {
	Channel  string `json:"channel"`
	UserName string `json:"username"`
	Text     string `json:"text"`
}
