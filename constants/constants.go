package constants

// Roles
const (
	ROLE_PLATFORM_ADMIN = "PLATFORM_ADMIN"
	ROLE_OWNER          = "OWNER"
	ROLE_STAFF          = "STAFF"
)

// Ticket types
const (
	TICKET_12_SESSION = "12_SESSION"
	TICKET_20_SESSION = "20_SESSION"
	TICKET_MONTHLY    = "MONTHLY"
	TICKET_EVENT      = "EVENT"
)

// Ticket status
const (
	TICKET_ACTIVE = "ACTIVE"
	TICKET_LOCKED = "LOCKED"
)

// Check-in methods
const (
	METHOD_QR_CHUNG = "QR_CHUNG" // QR chung đặt tại quầy
	METHOD_QR_RIENG = "QR_RIENG" // QR riêng của từng khách
	METHOD_MANUAL   = "MANUAL"   // nhân viên nhập tay
)

// Check-in log status
const (
	CHECKIN_SUCCESS = "SUCCESS"
	CHECKIN_FAILED  = "FAILED"
)

// Token kinds
const (
	TOKEN_IDENTITY    = "identity"
	TOKEN_DYNAMIC     = "dynamic"
	TOKEN_DAYPASS     = "daypass"
	TOKEN_STATIC_CARD = "static_card"
)

// User-facing check-in messages. Các test phía client so sánh đúng chuỗi này.
const (
	MSG_TICKET_NOT_FOUND = "ticket not found"
	MSG_FOREIGN_TENANT   = "belongs to another system"
	MSG_NO_SESSIONS      = "no sessions remaining"
	MSG_TICKET_EXPIRED   = "ticket expired"
	MSG_TICKET_LOCKED    = "ticket locked"
	MSG_WRONG_PIN        = "incorrect PIN"
	MSG_CHECKIN_OK       = "check-in success"
	MSG_CHECKIN_FAILED   = "check-in failed"
)

// Generic API messages
const (
	ERROR_INPUT              = "Dữ liệu không hợp lệ"
	ERROR_INTERNAL_ERROR     = "Lỗi hệ thống"
	ERROR_CREATE             = "Không thể tạo bản ghi"
	ERROR_UPDATE             = "Không thể cập nhật bản ghi"
	ERROR_PARSE_DATA_TO_LOCALS = "Không đọc được dữ liệu đã validate"
	NOT_FOUND_RECORDS        = "Không tìm thấy bản ghi"
	NOT_ADMIN                = "Không có quyền thao tác"
	MISSING_LOGIN_INPUT      = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME         = "Tài khoản không tồn tại"
	INVALID_PASSWORD         = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE       = "Tài khoản đã bị khoá"
	DATA_INPUT_IS_NOT_NUMBER = "Tham số phải là số"
	PHONE_EXISTS             = "Số điện thoại đã tồn tại trong hệ thống"
)
