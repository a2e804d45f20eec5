package wizard

// Validation messages.
const (
	MsgInvalidPhone      = "เบอร์โทรศัพท์ไม่ถูกต้อง กรุณาใช้รูปแบบ 0[6-9]xxxxxxxx"
	MsgInvalidBotPhone   = "เบอร์โทรศัพท์ไม่ถูกต้อง กรุณาใช้รูปแบบ 0[6-9]xxxxxxxx หรือ +66xxxxxxxxx"
	MsgAPIKeyRequired    = "กรุณากรอก API key"
	MsgInvalidOTP        = "รหัส OTP ต้องมี 5 หลัก"
	MsgNoRegisteredPhone = "เบอร์โทรศัพท์ไม่ถูกต้อง กรุณากรอกเบอร์รับซองใหม่"
)

// Fallbacks when a failed response carries no message.
const (
	msgSaveKeyFailed = "เกิดข้อผิดพลาดในการบันทึก API Key กรุณาลองใหม่อีกครั้ง"
	msgSendOTPFailed = "เกิดข้อผิดพลาดในการส่ง OTP กรุณาลองอีกครั้ง"
	msgVerifyFailed  = "รหัส OTP ไม่ถูกต้อง กรุณาลองใหม่อีกครั้ง"
	msgLookupFailed  = "กรุณาตรวจสอบข้อมูลที่กรอกและลองใหม่อีกครั้ง"
)

// Success notices.
const (
	NoticeKeySaved      = "บันทึก API Key สำเร็จ! กรุณากรอกเบอร์โทรศัพท์บอทเพื่อดำเนินการต่อ"
	NoticeOTPSent       = "ส่งรหัส OTP สำเร็จ! กรุณาตรวจสอบ SMS และกรอกรหัส OTP ที่ได้รับ"
	NoticeOTPResent     = "ส่งรหัส OTP ใหม่สำเร็จ! กรุณาตรวจสอบ SMS และกรอกรหัส OTP ที่ได้รับ"
	NoticeLoginComplete = "ล็อกอินบอทสำเร็จ! กรุณาลงทะเบียนเบอร์รับซองและใส่ API Key"
	NoticeBotStarted    = "ล็อกอินบอทสำเร็จ! บอทเริ่มทำงานแล้ว"
	NoticeSetupSaved    = "บันทึกสำเร็จ! API Key ถูกบันทึกเรียบร้อยแล้ว"
)
