package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gym_manager/config"
	"gym_manager/constants"
	"gym_manager/utils"
)

// Codec cho payload QR. sig chỉ là checksum CRC32 trộn secret — KHÔNG phải
// chữ ký mật mã, và phía authorize cũng không verify sig khi decode; giữ
// nguyên hành vi này vì siết lại sẽ làm các token cũ/hồi phục được bị từ chối.

var ErrDecode = errors.New("token unparsable")

var qrSecret = config.ConfigDefault("QR_SECRET", "gym-checkin-secret")

var idPattern = regexp.MustCompile(`"id"\s*:\s*"([^"]+)"`)

type TokenFields struct {
	TicketCode string
	Phone      string
	Name       string
	TenantName string
}

type DecodedToken struct {
	Kind       string
	TicketCode string
	Phone      string
	Sig        string
	Raw        string
}

func signPayload(parts ...string) string {
	sum := crc32.ChecksumIEEE([]byte(strings.Join(parts, "|") + "|" + qrSecret))
	return fmt.Sprintf("%08x", sum)
}

// EncodeToken dựng payload JSON cho một loại credential. Cùng kind+fields tại
// cùng thời điểm cho ra cùng output (chỉ dynamic có timestamp thay đổi).
func EncodeToken(kind string, f TokenFields) (string, error) {
	payload := map[string]any{"type": kind}

	switch kind {
	case constants.TOKEN_IDENTITY:
		// thẻ định danh khách: không gắn vé cụ thể
		payload["phone"] = f.Phone
		payload["name"] = f.Name
		payload["sig"] = signPayload(kind, f.Phone)
	case constants.TOKEN_DYNAMIC:
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		payload["id"] = f.TicketCode
		payload["ts"] = ts
		payload["name"] = f.Name
		payload["sig"] = signPayload(kind, f.TicketCode, ts)
	case constants.TOKEN_DAYPASS:
		date := utils.LocalDate(time.Now())
		payload["id"] = f.TicketCode
		payload["date"] = date
		payload["sig"] = signPayload(kind, f.TicketCode, date)
	case constants.TOKEN_STATIC_CARD:
		payload["id"] = f.TicketCode
		payload["name"] = f.Name
		payload["gym"] = f.TenantName
		payload["sig"] = signPayload(kind, f.TicketCode)
	default:
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeToken khôi phục tối đa từ chuỗi mà máy quét đưa về:
//  1. JSON chuẩn
//  2. JSON bị escape/bọc quote thừa (strip rồi parse lại)
//  3. JSON hỏng nhưng còn lọt chuỗi `"id":"..."` → vớt bằng regex
//  4. chuỗi trần → coi là mã vé nhập tay
//
// Decode KHÔNG verify sig — đây là khôi phục cấu trúc, không phải xác thực.
func DecodeToken(raw string) (DecodedToken, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DecodedToken{}, ErrDecode
	}

	if tok, ok := parseTokenJSON(trimmed); ok {
		tok.Raw = raw
		return tok, nil
	}

	// máy quét hay trả về payload bị bọc thêm một lớp quote + escape
	if unquoted, err := strconv.Unquote(trimmed); err == nil {
		if tok, ok := parseTokenJSON(unquoted); ok {
			tok.Raw = raw
			return tok, nil
		}
	}
	stripped := strings.ReplaceAll(strings.Trim(trimmed, `"'`), `\"`, `"`)
	if tok, ok := parseTokenJSON(stripped); ok {
		tok.Raw = raw
		return tok, nil
	}

	if strings.Contains(trimmed, "{") || strings.Contains(trimmed, `"`) {
		if m := idPattern.FindStringSubmatch(trimmed); m != nil {
			return DecodedToken{TicketCode: m[1], Raw: raw}, nil
		}
		return DecodedToken{}, ErrDecode
	}

	// không có cấu trúc gì: coi nguyên chuỗi là mã vé
	return DecodedToken{TicketCode: trimmed, Raw: raw}, nil
}

func parseTokenJSON(s string) (DecodedToken, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return DecodedToken{}, false
	}

	tok := DecodedToken{}
	if v, ok := payload["type"].(string); ok {
		tok.Kind = v
	}
	if v, ok := payload["id"].(string); ok {
		tok.TicketCode = v
	}
	if v, ok := payload["phone"].(string); ok {
		tok.Phone = v
	}
	if v, ok := payload["sig"].(string); ok {
		tok.Sig = v
	}

	if tok.TicketCode == "" && tok.Phone == "" {
		return DecodedToken{}, false
	}
	return tok, true
}
