package emailsvc

import (
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/musicaulas/backend/core"
)

var (
	// SentMessages captures everything sent in TEST mode.
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

// consoleService writes emails to stdout instead of sending them; used in
// DEV and TEST modes.
type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.EmailService {
	return &consoleService{
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if !(msg.HasRecipients() && msg.HasContent()) {
		return
	}
	svc.send(*msg)
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
}

func (svc consoleService) send(msg core.EmailMessage) {
	body := new(strings.Builder)
	body.WriteString("From: " + svc.defaultFromEmail.String() + "\n")
	body.WriteString("To: " + joinAddresses(msg.To) + "\n")
	if len(msg.Cc) > 0 {
		body.WriteString("Cc: " + joinAddresses(msg.Cc) + "\n")
	}
	body.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\n")
	body.WriteString("Subject: " + svc.subjPrefix + msg.Subject + "\n\n")
	body.WriteString(msg.BodyStr)
	fmt.Printf("%s\n%s\n%s\n", strings.Repeat("-", 70), body.String(), strings.Repeat("-", 70))
}

func joinAddresses(addrs []mail.Address) string {
	strs := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		strs = append(strs, addr.String())
	}
	return strings.Join(strs, ", ")
}
