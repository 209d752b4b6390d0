package lib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

var smsHTTPClient = &http.Client{Timeout: 10 * time.Second}

// SendSMS posts a message to the SMS gateway configured in SMS_GATEWAY_URL.
// The gateway accepts {"number": "...", "message": "..."}.
func SendSMS(number string, message string) error {
	gateway := os.Getenv("SMS_GATEWAY_URL")
	if gateway == "" {
		return errors.New("SMS gateway not configured")
	}
	payload, err := json.Marshal(map[string]string{
		"number":  number,
		"message": message,
	})
	if err != nil {
		return err
	}
	res, err := smsHTTPClient.Post(gateway, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode >= 400 {
		if msg := gjson.GetBytes(body, "message").String(); msg != "" {
			return fmt.Errorf("gateway returned %d: %s", res.StatusCode, msg)
		}
		return fmt.Errorf("gateway returned %d", res.StatusCode)
	}
	return nil
}
