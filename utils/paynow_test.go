package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPayNowPayloadWithReference(t *testing.T) {
	payload := BuildPayNowPayload(PayNowOptions{
		UEN:          "201403121W",
		Amount:       10,
		Ref:          "VIS-1234",
		MerchantName: "CrowdWatch",
		MerchantCity: "Singapore",
	})

	assert.Equal(t,
		"00020101021226370009SG.PAYNOW010120210201403121W03010520400005303702540510.005802SG5910CrowdWatch6009Singapore62120108VIS-123463049AF4",
		payload)
}

func TestBuildPayNowPayloadDefaults(t *testing.T) {
	payload := BuildPayNowPayload(PayNowOptions{
		UEN:    "201403121W",
		Amount: 60,
	})

	assert.Equal(t,
		"00020101021226370009SG.PAYNOW010120210201403121W03010520400005303702540560.005802SG5908MERCHANT6009Singapore630405D2",
		payload)
}

func TestBuildPayNowPayloadDeterministic(t *testing.T) {
	opts := PayNowOptions{UEN: "201403121W", Amount: 12.5, Ref: "PAY-abc"}
	assert.Equal(t, BuildPayNowPayload(opts), BuildPayNowPayload(opts))
}

func TestBuildPayNowPayloadAmountFormatting(t *testing.T) {
	payload := BuildPayNowPayload(PayNowOptions{UEN: "201403121W", Amount: 7})
	assert.Contains(t, payload, "54047.00", "amount rendered with two decimals")
}

func TestBuildPayNowPayloadEditableFlag(t *testing.T) {
	fixed := BuildPayNowPayload(PayNowOptions{UEN: "201403121W", Amount: 5})
	editable := BuildPayNowPayload(PayNowOptions{UEN: "201403121W", Amount: 5, Editable: true})

	// "03" + length "01" + flag, anchored against the category code that
	// always follows the merchant-account template.
	assert.Contains(t, fixed, "0301052040000")
	assert.Contains(t, editable, "0301152040000")
	assert.NotEqual(t, fixed, editable)
}

func TestBuildPayNowPayloadTruncatesMerchantFields(t *testing.T) {
	payload := BuildPayNowPayload(PayNowOptions{
		UEN:          "201403121W",
		Amount:       5,
		MerchantName: strings.Repeat("A", 40),
		MerchantCity: strings.Repeat("B", 40),
	})

	assert.Contains(t, payload, "5925"+strings.Repeat("A", 25))
	assert.Contains(t, payload, "6015"+strings.Repeat("B", 15))
}

func TestCrc16Ccitt(t *testing.T) {
	// Standard CCITT-FALSE check value.
	assert.Equal(t, "29B1", crc16ccitt("123456789"))
}
