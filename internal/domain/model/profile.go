package model

// Profile is the summary returned alongside the pass artifact
// (make-code-info). Cached between refreshes for offline display.
type Profile struct {
	Name         string `json:"name"`
	Apartment    string `json:"apartment"`
	PassTime     string `json:"passTime"`
	Phone        string `json:"phone"`
	CompanyName  string `json:"companyName"`
	QRCodeStatus int    `json:"qrCodeStatus"`
	Locked       int    `json:"locked"`
	LockedCount  int    `json:"lockedCount"`
	Status       int    `json:"status"`
}

// LoginInfo is the extended account record (login-info). Most fields are
// optional on the wire; pointers mirror the nullable envelope.
type LoginInfo struct {
	ID         string  `json:"id"`
	Account    string  `json:"account"`
	Name       string  `json:"name"`
	Sex        string  `json:"sex"`
	Phone      string  `json:"phone"`
	IDCard     string  `json:"idCard"`
	Identifier string  `json:"identifier"`
	Status     int     `json:"status"`
	Birthday   *string `json:"birthday"`
	Email      *string `json:"email"`
	DepartName *string `json:"departName"`
	Telephone  *string `json:"telephone"`
	Avatar     *string `json:"avatar"`
	Remark     *string `json:"remark"`
}

// SexDisplay maps the wire encoding of LoginInfo.Sex to a display string.
// Unknown values pass through unchanged.
func SexDisplay(sex string) string {
	switch sex {
	case "1":
		return "男"
	case "0":
		return "女"
	default:
		return sex
	}
}
