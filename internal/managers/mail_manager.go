package managers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"
)

const (
	defaultMailDomain = "mail.gamereview.dev"
	mailTimeout       = 2 * time.Second
)

// MailMgr is an interface that outlines the contract for email management.
// It includes methods for sending activation and confirmation emails.
type MailMgr interface {
	SendActivationMail(email, nickName, token, serviceName string) error
	SendConfirmationMail(email, nickName, serviceName string) error
}

// MailManager sends account mails through Mailgun. Bodies are rendered with Hermes.
type MailManager struct {
	Hermes  *hermes.Hermes
	Mailgun *mailgun.MailgunImpl
	From    string
	// Mails are only sent when Production is set.
	Production bool
}

// SendActivationMail sends the activation token a reviewer needs to activate their account.
func (mm *MailManager) SendActivationMail(email, nickName, token, serviceName string) error {
	if !mm.Production {
		log.Info("Skipping activation mail in development mode")
		return nil
	}

	emailBody, err := mm.Hermes.GenerateHTML(activationEmail(nickName, token, serviceName))
	if err != nil {
		return err
	}

	if err := mm.send(email, "Activate your account", emailBody); err != nil {
		log.Warning("Error sending activation mail: " + err.Error())
		return err
	}
	log.Debug("Activation mail sent to ", email)

	return nil
}

// SendConfirmationMail tells a reviewer that their account has been activated.
func (mm *MailManager) SendConfirmationMail(email, nickName, serviceName string) error {
	if !mm.Production {
		log.Info("Skipping confirmation mail in development mode")
		return nil
	}

	emailBody, err := mm.Hermes.GenerateHTML(confirmationEmail(nickName, serviceName))
	if err != nil {
		return err
	}

	if err := mm.send(email, "Account successfully activated", emailBody); err != nil {
		log.Warning("Error sending confirmation mail: " + err.Error())
		return err
	}
	log.Debug("Confirmation mail sent to ", email)

	return nil
}

func (mm *MailManager) send(email, subject, htmlBody string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	message := mm.Mailgun.NewMessage(mm.From, subject, "", email)
	message.SetHtml(htmlBody)
	_, _, err := mm.Mailgun.Send(ctx, message)
	return err
}

func activationEmail(nickName, token, serviceName string) hermes.Email {
	return hermes.Email{
		Body: hermes.Body{
			Name: nickName,
			Intros: []string{
				fmt.Sprintf("Welcome to %s! We're very excited to read your first review.", serviceName),
			},
			Actions: []hermes.Action{
				{
					Instructions: fmt.Sprintf("To activate your account, please enter the following code in %s:", serviceName),
					InviteCode:   token,
				},
			},
			Outros: []string{
				"If you did not create an account, you can safely ignore this mail.",
			},
		},
	}
}

func confirmationEmail(nickName, serviceName string) hermes.Email {
	return hermes.Email{
		Body: hermes.Body{
			Name: nickName,
			Intros: []string{
				"Your account has been successfully activated!",
			},
			Outros: []string{
				fmt.Sprintf("Have fun reviewing on %s!", serviceName),
			},
		},
	}
}

// NewMailManager configures Mailgun from MAILGUN_DOMAIN and MAILGUN_API_KEY.
// Mails are only delivered when ENVIRONMENT is "production".
func NewMailManager() MailMgr {
	log.Info("Initializing mail manager")

	production := os.Getenv("ENVIRONMENT") == "production"
	if !production {
		log.Println("Running in development mode, email will not be sent to reviewers")
	}

	domain := os.Getenv("MAILGUN_DOMAIN")
	if domain == "" {
		domain = defaultMailDomain
	}

	mailgunInstance := mailgun.NewMailgun(domain, os.Getenv("MAILGUN_API_KEY"))
	mailgunInstance.SetAPIBase(mailgun.APIBaseEU)

	mm := &MailManager{
		Hermes:     newHermes(),
		Mailgun:    mailgunInstance,
		From:       fmt.Sprintf("Game Review <team@%s>", domain),
		Production: production,
	}
	log.Info("Initialized mail manager")
	return mm
}

func newHermes() *hermes.Hermes {
	return &hermes.Hermes{
		Theme:         new(hermes.Default),
		TextDirection: hermes.TDLeftToRight,
		Product: hermes.Product{
			Name:        "Game Review",
			Link:        "https://gamereview.dev/",
			Copyright:   "© Game Review",
			TroubleText: "If you’re having trouble with the button '{ACTION}', copy and paste the URL below into your web browser.",
		},
	}
}
