package templates

import "encoding/json"

// EmailData defines the fields available to email templates.
type EmailData struct {
	AppName string `json:"AppName"`
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	Code    string `json:"Code"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// NewVerifyCodeData builds the data for the verify_code template.
func NewVerifyCodeData(appName, name, email, code string) EmailData {
	return EmailData{AppName: appName, Name: name, Email: email, Code: code}
}
