package utils

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/smtp"
	"os"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// TicketIssuedData dữ liệu cho email phát hành vé
type TicketIssuedData struct {
	TicketCode string
	OwnerName  string
	TenantName string
	Type       string
	TotalUses  int
	ExpiresAt  string
}

// SendTicketIssuedEmail gửi email vé mới kèm QR (async, không chặn response)
func SendTicketIssuedEmail(to string, data TicketIssuedData, qrPng []byte) {
	go func() {
		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Vé tập %s - %s", data.TicketCode, data.TenantName))
		m.SetBody("text/html", fmt.Sprintf(
			"<p>Chào %s,</p><p>Vé <b>%s</b> (%s, %d buổi) đã được phát hành, hạn dùng đến %s. Quét mã QR đính kèm khi check-in.</p>",
			data.OwnerName, data.TicketCode, data.Type, data.TotalUses, data.ExpiresAt))

		if len(qrPng) > 0 {
			filename := fmt.Sprintf("Ve_%s.png", data.TicketCode)
			m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(qrPng))
				return err
			}))
		}

		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email vé %s: %v", data.TicketCode, err)
		}
	}()
}

// SendPasswordResetEmail gửi link đặt lại mật khẩu cho tài khoản console
func SendPasswordResetEmail(to, resetLink string) error {
	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{to}
	e.Subject = "Khôi phục mật khẩu"
	e.Text = []byte(fmt.Sprintf("Nhấp vào liên kết để đặt lại mật khẩu: %s", resetLink))

	host := os.Getenv("SMTP_HOST")
	addr := host + ":" + os.Getenv("SMTP_PORT")
	return e.Send(addr, smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), host))
}
