package utils

import (
	"fmt"
	"strings"
)

const baseWAURL = "https://wa.me/"

// Customer update templates, picked by delivery progress.
const (
	MsgPlatesReady   = "Final Step: Your HSRP plates have been received at our branch. Please visit us for fitting at your convenience."
	MsgTRProcessed   = "Update: Your vehicle's Temporary/Permanent Registration (TR) is successfully processed."
	MsgInsuranceDone = "Great news! Your vehicle's insurance papers are complete and ready. Find the attached document."
	MsgGenericUpdate = "Hello, this is a quick update regarding your vehicle delivery. Please contact our team for details."
)

// NormalizePhone strips formatting and prepends the +91 country code to
// bare 10-digit numbers. Anything else is returned digits-only for the
// caller to judge.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 10 && !strings.HasPrefix(d, "0") {
		return "+91" + d
	}
	return d
}

// WhatsAppLink builds a wa.me deep link for a normalized +91 number.
// Returns "" when the number cannot be messaged; notification is always
// best-effort and never blocks the flow that requested it.
func WhatsAppLink(phone, message string) string {
	if len(phone) <= 3 || !strings.HasPrefix(phone, "+91") {
		return ""
	}
	return fmt.Sprintf("%s%s?text=%s", baseWAURL, phone, strings.ReplaceAll(message, " ", "%20"))
}

// DeliveryUpdateLink picks the most advanced milestone message for a
// customer: plates ready beats TR processed beats insurance done.
func DeliveryUpdateLink(phone string, platesReceived, trDone, insuranceDone bool) string {
	normalized := NormalizePhone(phone)
	switch {
	case platesReceived:
		return WhatsAppLink(normalized, MsgPlatesReady)
	case trDone:
		return WhatsAppLink(normalized, MsgTRProcessed)
	case insuranceDone:
		return WhatsAppLink(normalized, MsgInsuranceDone)
	default:
		return WhatsAppLink(normalized, MsgGenericUpdate)
	}
}

// ApprovalRequestLink notifies the approving owner about a parked order.
func ApprovalRequestLink(ownerPhone, customerName, model string, discount float64) string {
	msg := fmt.Sprintf("Approval needed: discount of %.2f requested for %s (%s). Please review in the approvals queue.", discount, customerName, model)
	return WhatsAppLink(NormalizePhone(ownerPhone), msg)
}
