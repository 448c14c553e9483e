package models

// ProvisionMessage is the message published to the provisioning queue when an
// assembled Job is handed off
type ProvisionMessage struct {
	Job Job `json:"job"`
}
