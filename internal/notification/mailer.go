package notification

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"ewaste-tracker/internal/config"
)

// AssignmentMail carries the job and customer details sent to a pickup person
// when a request is assigned to them.
type AssignmentMail struct {
	To            string
	Name          string
	RequestID     uuid.UUID
	DeviceType    string
	CustomerName  string
	CustomerPhone string
	PickupAddress string
	ScheduledAt   string
}

// Mailer is the outbound mail contract. Every send may fail independently;
// callers must not propagate a failure as an operation failure.
type Mailer interface {
	SendOTP(ctx context.Context, to, name, code string) error
	SendApproval(ctx context.Context, to, name string, requestID uuid.UUID, deviceType string) error
	SendAssignment(ctx context.Context, mail AssignmentMail) error
}

// SMTPMailer sends plain-text mail over SMTP. Each send is bounded by the
// deadline of the caller's context.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, name, code string) error {
	body := fmt.Sprintf("Hello %s,\n\n"+
		"Your e-waste pickup verification code is: %s\n\n"+
		"Please share this code with the pickup person to complete the request.\n"+
		"If you did not request this, please ignore this email.\n\n"+
		"Regards,\nSmart e-Waste Collection Team", name, code)

	return m.send(ctx, to, "Pickup Verification OTP - Smart e-Waste", body)
}

func (m *SMTPMailer) SendApproval(ctx context.Context, to, name string, requestID uuid.UUID, deviceType string) error {
	subject := fmt.Sprintf("Request Approved - Smart e-Waste (ID: %s)", requestID)
	body := fmt.Sprintf("Hello %s,\n\n"+
		"Good news! Your e-waste collection request for '%s' (ID: %s) has been APPROVED by our admin team.\n\n"+
		"Next Steps:\n"+
		"1. Our team will assign a pickup agent shortly.\n"+
		"2. You will receive another notification once the pickup is scheduled.\n"+
		"3. You can track the status in your dashboard.\n\n"+
		"Thank you for contributing to a greener planet!\n\n"+
		"Regards,\nSmart e-Waste Collection Team", name, deviceType, requestID)

	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) SendAssignment(ctx context.Context, mail AssignmentMail) error {
	phone := mail.CustomerPhone
	if phone == "" {
		phone = "N/A"
	}

	subject := fmt.Sprintf("New Pickup Assignment - Smart e-Waste (ID: %s)", mail.RequestID)
	body := fmt.Sprintf("Hello %s,\n\n"+
		"You have been assigned a new e-waste pickup job.\n\n"+
		"--- JOB DETAILS ---\n"+
		"Request ID: %s\n"+
		"Device: %s\n"+
		"Scheduled Time: %s\n\n"+
		"--- CUSTOMER DETAILS ---\n"+
		"Name: %s\n"+
		"Phone: %s\n"+
		"Address: %s\n\n"+
		"Please verify the item upon arrival and ask the customer for the OTP to complete the job.\n\n"+
		"Regards,\nSmart e-Waste Admin Team",
		mail.Name, mail.RequestID, mail.DeviceType, mail.ScheduledAt,
		mail.CustomerName, phone, mail.PickupAddress)

	return m.send(ctx, mail.To, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open smtp session: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("AUTH"); ok && m.cfg.User != "" {
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"Date: " + time.Now().Format(time.RFC1123Z),
		"",
		body,
	}, "\r\n")

	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("failed to write mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish mail body: %w", err)
	}

	return client.Quit()
}
