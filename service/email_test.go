package service

import (
	"testing"

	"wagetrack/config"

	"github.com/stretchr/testify/assert"
)

func newTestEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{})
}

func TestGenerateResetEmailBody(t *testing.T) {
	s := newTestEmailService()
	body := s.generateResetEmailBody("张三", "888999")
	assert.Contains(t, body, "张三")
	assert.Contains(t, body, "888999")
	assert.Contains(t, body, "密码重置请求")
	assert.Contains(t, body, "10 分钟")
}

func TestSendPasswordResetEmail_Disabled(t *testing.T) {
	s := newTestEmailService()
	err := s.SendPasswordResetEmail("test@example.com", "张三", "123456")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮件服务未启用")
}

func TestSendTestEmail_Disabled(t *testing.T) {
	s := newTestEmailService()
	err := s.SendTestEmail("test@example.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮件服务未启用")
}
