package helper

import (
	"encoding/json"
	"testing"

	"gym_manager/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTokenPerKind(t *testing.T) {
	fields := TokenFields{
		TicketCode: "T001",
		Phone:      "0900000001",
		Name:       "Nguyễn Văn A",
		TenantName: "Demo Gym",
	}

	tests := []struct {
		kind     string
		wantKeys []string
	}{
		{constants.TOKEN_IDENTITY, []string{"type", "phone", "name", "sig"}},
		{constants.TOKEN_DYNAMIC, []string{"type", "id", "ts", "name", "sig"}},
		{constants.TOKEN_DAYPASS, []string{"type", "id", "date", "sig"}},
		{constants.TOKEN_STATIC_CARD, []string{"type", "id", "name", "gym", "sig"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			raw, err := EncodeToken(tt.kind, fields)
			require.NoError(t, err)

			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(raw), &payload))
			for _, key := range tt.wantKeys {
				assert.Contains(t, payload, key)
			}
			assert.Equal(t, tt.kind, payload["type"])
		})
	}
}

func TestEncodeTokenUnknownKind(t *testing.T) {
	_, err := EncodeToken("hologram", TokenFields{TicketCode: "T001"})
	assert.Error(t, err)
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	raw, err := EncodeToken(constants.TOKEN_STATIC_CARD, TokenFields{
		TicketCode: "T001",
		Name:       "Nguyễn Văn A",
		TenantName: "Demo Gym",
	})
	require.NoError(t, err)

	tok, err := DecodeToken(raw)
	require.NoError(t, err)
	assert.Equal(t, constants.TOKEN_STATIC_CARD, tok.Kind)
	assert.Equal(t, "T001", tok.TicketCode)
	assert.NotEmpty(t, tok.Sig)
}

func TestDecodeIdentityTokenKeepsPhone(t *testing.T) {
	raw, err := EncodeToken(constants.TOKEN_IDENTITY, TokenFields{
		Phone: "0900000001",
		Name:  "Nguyễn Văn A",
	})
	require.NoError(t, err)

	tok, err := DecodeToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "0900000001", tok.Phone)
	assert.Empty(t, tok.TicketCode)
}

func TestDecodeTokenFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCode string
	}{
		{
			name:     "JSON chuẩn",
			raw:      `{"type":"dynamic","id":"T001","ts":"1700000000","sig":"deadbeef"}`,
			wantCode: "T001",
		},
		{
			name:     "payload bị bọc quote và escape",
			raw:      `"{\"type\":\"dynamic\",\"id\":\"T002\",\"sig\":\"deadbeef\"}"`,
			wantCode: "T002",
		},
		{
			name:     "JSON hỏng nhưng còn chuỗi id",
			raw:      `{"type":"dynamic","id":"T003","ts":`,
			wantCode: "T003",
		},
		{
			name:     "chuỗi trần là mã vé nhập tay",
			raw:      "T004",
			wantCode: "T004",
		},
		{
			name:     "chuỗi trần có khoảng trắng thừa",
			raw:      "  T005  ",
			wantCode: "T005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := DecodeToken(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, tok.TicketCode)
			assert.Equal(t, tt.raw, tok.Raw)
		})
	}
}

func TestDecodeTokenUnrecoverable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"chuỗi rỗng", ""},
		{"chỉ khoảng trắng", "   "},
		{"JSON hỏng không vớt được id", `{"type":"dynamic","ts":"170`},
		{"quote lạc không có cấu trúc", `"""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.raw)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestDecodeTokenIsIdempotent(t *testing.T) {
	raw, err := EncodeToken(constants.TOKEN_DAYPASS, TokenFields{TicketCode: "T001"})
	require.NoError(t, err)

	first, err := DecodeToken(raw)
	require.NoError(t, err)
	second, err := DecodeToken(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSignPayloadDeterministic(t *testing.T) {
	a := signPayload("static_card", "T001")
	b := signPayload("static_card", "T001")
	c := signPayload("static_card", "T002")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 8)
}
