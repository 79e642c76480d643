package utils

import (
	"fmt"
	"strings"
)

// PayNow SGQR (EMV Merchant Presented) payload builder with CRC16-CCITT trailer.

type PayNowOptions struct {
	UEN          string
	Amount       float64 // 2dp
	Ref          string  // optional bill reference
	Editable     bool    // amount editable by payer, default false
	Expiry       string  // optional, YYYYMMDD or YYYYMMDDHHmmss
	MerchantName string  // optional
	MerchantCity string  // optional
}

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

func crc16ccitt(s string) string {
	crc := 0xffff
	for i := 0; i < len(s); i++ {
		crc ^= int(s[i]) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc = crc << 1
			}
			crc &= 0xffff
		}
	}
	return fmt.Sprintf("%04X", crc)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// BuildPayNowPayload encodes a dynamic PayNow QR for a UEN payee.
// Deterministic: the same options always produce the same string.
func BuildPayNowPayload(opts PayNowOptions) string {
	amountStr := fmt.Sprintf("%.2f", opts.Amount)
	editable := "0"
	if opts.Editable {
		editable = "1"
	}

	// Merchant Account Info (26): proxy type 2 = UEN
	maiParts := []string{
		tlv("00", "SG.PAYNOW"),
		tlv("01", "2"),
		tlv("02", opts.UEN),
		tlv("03", editable),
	}
	if opts.Expiry != "" {
		maiParts = append(maiParts, tlv("04", opts.Expiry))
	}
	merchantAccountInfo := strings.Join(maiParts, "")

	// Additional data (62): bill/ref number (01)
	addlData := ""
	if opts.Ref != "" {
		addlData = tlv("62", tlv("01", opts.Ref))
	}

	name := opts.MerchantName
	if name == "" {
		name = "MERCHANT"
	}
	city := opts.MerchantCity
	if city == "" {
		city = "Singapore"
	}

	payload := tlv("00", "01") + // payload format indicator
		tlv("01", "12") + // 12 = dynamic QR
		tlv("26", merchantAccountInfo) +
		tlv("52", "0000") + // MCC unused
		tlv("53", "702") + // SGD
		tlv("54", amountStr) +
		tlv("58", "SG") +
		tlv("59", truncate(name, 25)) +
		tlv("60", truncate(city, 15)) +
		addlData

	toCrc := payload + "6304"
	return toCrc + crc16ccitt(toCrc)
}
