package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919876543210", NormalizePhone("9876543210"))
	assert.Equal(t, "+919876543210", NormalizePhone("98765 43210"))
	assert.Equal(t, "+919876543210", NormalizePhone("(98765)-43210"))

	// Already prefixed numbers come back digits-only; the caller's +91
	// check catches them downstream.
	assert.Equal(t, "919876543210", NormalizePhone("+91 98765 43210"))
	assert.Equal(t, "0876543210", NormalizePhone("0876543210"), "leading zero is not a mobile number")
	assert.Equal(t, "12345", NormalizePhone("12345"))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+919876543210", "Hello there")
	assert.Equal(t, "https://wa.me/+919876543210?text=Hello%20there", link)

	assert.Empty(t, WhatsAppLink("9876543210", "no country code"))
	assert.Empty(t, WhatsAppLink("", "blank number"))
	assert.Empty(t, WhatsAppLink("+91", "prefix only"))
}

func TestDeliveryUpdateLinkMilestonePrecedence(t *testing.T) {
	phone := "9876543210"

	link := DeliveryUpdateLink(phone, true, true, true)
	assert.Contains(t, link, strings.ReplaceAll(MsgPlatesReady, " ", "%20"))

	link = DeliveryUpdateLink(phone, false, true, true)
	assert.Contains(t, link, strings.ReplaceAll(MsgTRProcessed, " ", "%20"))

	link = DeliveryUpdateLink(phone, false, false, true)
	assert.Contains(t, link, strings.ReplaceAll(MsgInsuranceDone, " ", "%20"))

	link = DeliveryUpdateLink(phone, false, false, false)
	assert.Contains(t, link, strings.ReplaceAll(MsgGenericUpdate, " ", "%20"))
}

func TestDeliveryUpdateLinkBadNumber(t *testing.T) {
	assert.Empty(t, DeliveryUpdateLink("12345", true, false, false))
}

func TestApprovalRequestLink(t *testing.T) {
	link := ApprovalRequestLink("9876543210", "Ravi Kumar", "ACTIVA", 2500)
	assert.Contains(t, link, "https://wa.me/+919876543210")
	assert.Contains(t, link, "2500.00")
	assert.Contains(t, link, "Ravi%20Kumar")
	assert.Contains(t, link, "(ACTIVA)")
}
