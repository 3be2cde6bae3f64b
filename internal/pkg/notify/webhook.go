// Copyright 2025 Vantage Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookChannel 企业通知外呼通道
type WebhookChannel struct {
	client *resty.Client
}

// Message 外呼载荷
type Message struct {
	RecipientId string `json:"recipientId"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	SentAt      string `json:"sentAt"`
}

func NewWebhookChannel() *WebhookChannel {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	return &WebhookChannel{client: client}
}

// Send POST 消息到企业配置的回调地址
func (c *WebhookChannel) Send(ctx context.Context, webhookUrl string, msg *Message) error {
	if webhookUrl == "" {
		return fmt.Errorf("webhook url is empty")
	}
	msg.SentAt = time.Now().Format(time.RFC3339)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(webhookUrl)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}
	return nil
}
