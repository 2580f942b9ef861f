package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyWebhook POSTs a JSON payload to an external endpoint, used to
// tell downstream systems about order lifecycle changes.
func NotifyWebhook(url string, payload any) error {
	resp, err := resty.New().SetTimeout(10 * time.Second).
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}
