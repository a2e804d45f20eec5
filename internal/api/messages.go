package api

import "fmt"

// Operation names used in errors, logs and metric labels.
const (
	OpSubmitPhone         = "submit_phone"
	OpGenerateAPIKey      = "generate_api_key"
	OpInitiateBotLogin    = "initiate_bot_login"
	OpVerifyBotOTP        = "verify_bot_otp"
	OpCheckStatusByPhone  = "check_status_by_phone"
	OpCheckStatusByAPIKey = "check_status_by_api_key"
	OpCheckTotalBots      = "check_total_bots"
	OpCheckAPIHealth      = "check_api_health"
	OpRemoveBotSession    = "remove_bot_session"
	OpDeleteLimit         = "delete_limit"
)

// User-facing messages shared by several operations.
const (
	MsgCannotConnect      = "ไม่สามารถเชื่อมต่อกับเซิร์ฟเวอร์ได้ กรุณาตรวจสอบการเชื่อมต่ออินเทอร์เน็ต"
	MsgCensusOffline      = "เซิร์ฟเวอร์ออฟไลน์ ไม่สามารถตรวจสอบจำนวนบอทได้ในขณะนี้"
	MsgRequestSetup       = "เกิดข้อผิดพลาดในการตั้งค่าคำขอ กรุณาลองใหม่อีกครั้ง"
	MsgUnexpectedResponse = "ได้รับข้อมูลตอบกลับจากเซิร์ฟเวอร์ในรูปแบบที่ไม่ถูกต้อง"
	MsgCanceled           = "ยกเลิกคำขอแล้ว"

	MsgPhoneAndKeyRequired = "กรุณากรอกเบอร์โทรศัพท์และ API key"
	MsgAPIKeyRequired      = "กรุณากรอก API key"
	MsgLimitKeyRequired    = "กรุณากรอก key ที่ต้องการลบลิมิต"
	MsgLimitURLMissing     = "ยังไม่ได้ตั้งค่า URL สำหรับลบลิมิต"
)

// StatusMessage is the templated message for a server error with no body message.
func StatusMessage(statusCode int) string {
	return fmt.Sprintf("เซิร์ฟเวอร์ตอบกลับด้วยรหัส %d", statusCode)
}

// opMessages holds the per-operation fallbacks.
type opMessages struct {
	byStatus map[int]string
	network  string // overrides MsgCannotConnect
	rejected string // 2xx with success=false and no message
}

var messages = map[string]opMessages{
	OpSubmitPhone: {
		byStatus: map[int]string{404: "API endpoint ไม่พบ กรุณาตรวจสอบ URL ที่ถูกต้อง"},
		rejected: "เกิดข้อผิดพลาดในการเชื่อมต่อกับเซิร์ฟเวอร์ กรุณาลองใหม่อีกครั้ง",
	},
	OpGenerateAPIKey: {
		byStatus: map[int]string{404: "API endpoint สำหรับการสร้าง API key ไม่พบ"},
		rejected: "เกิดข้อผิดพลาดในการสร้าง API key กรุณาลองใหม่อีกครั้ง",
	},
	OpInitiateBotLogin: {
		byStatus: map[int]string{404: "API endpoint สำหรับล็อกอินบอทไม่พบ กรุณาตรวจสอบ URL"},
		rejected: "เกิดข้อผิดพลาดในการเริ่มต้นล็อกอินบอท กรุณาลองใหม่อีกครั้ง",
	},
	OpVerifyBotOTP: {
		byStatus: map[int]string{
			400: "รหัส OTP ไม่ถูกต้อง กรุณาตรวจสอบและลองอีกครั้ง",
			404: "API endpoint สำหรับยืนยัน OTP ไม่พบ",
		},
		rejected: "เกิดข้อผิดพลาดในการยืนยัน OTP กรุณาลองใหม่อีกครั้ง",
	},
	OpCheckStatusByPhone: {
		byStatus: map[int]string{404: "ไม่พบเบอร์นี้ในระบบ กรุณาลงทะเบียนก่อนใช้งาน"},
		rejected: "กรุณาตรวจสอบข้อมูลที่กรอกและลองใหม่อีกครั้ง",
	},
	OpCheckStatusByAPIKey: {
		byStatus: map[int]string{404: "ไม่พบ API key นี้ในระบบ กรุณาตรวจสอบหรือสร้าง key ใหม่"},
		rejected: "กรุณาตรวจสอบข้อมูลที่กรอกและลองใหม่อีกครั้ง",
	},
	OpCheckTotalBots: {
		byStatus: map[int]string{404: "API endpoint สำหรับตรวจสอบจำนวนบอทไม่พบ"},
		network:  MsgCensusOffline,
		rejected: "เกิดข้อผิดพลาดในการตรวจสอบจำนวนบอท กรุณาลองใหม่อีกครั้ง",
	},
	OpCheckAPIHealth: {},
	OpRemoveBotSession: {
		byStatus: map[int]string{404: "ไม่พบเซสชันบอทของ API key นี้"},
		rejected: "เกิดข้อผิดพลาดในการลบเซสชันบอท กรุณาลองใหม่อีกครั้ง",
	},
	OpDeleteLimit: {
		byStatus: map[int]string{404: "ไม่พบ key นี้ในระบบลิมิต"},
		rejected: "เกิดข้อผิดพลาดในการลบลิมิต กรุณาลองใหม่อีกครั้ง",
	},
}

// serverMessage picks the message for a non-2xx response: the body message,
// then the operation's message for that status, then the status template.
func serverMessage(op string, statusCode int, bodyMessage string) string {
	if bodyMessage != "" {
		return bodyMessage
	}
	if msg, ok := messages[op].byStatus[statusCode]; ok {
		return msg
	}
	return StatusMessage(statusCode)
}

// networkMessage is the message for a request that received no response.
func networkMessage(op string, kind Kind) string {
	if kind == KindCanceled {
		return MsgCanceled
	}
	if msg := messages[op].network; msg != "" {
		return msg
	}
	return MsgCannotConnect
}

// rejectedMessage is used when a 2xx envelope reports success=false without
// a message of its own.
func rejectedMessage(op string) string {
	if msg := messages[op].rejected; msg != "" {
		return msg
	}
	return StatusMessage(200)
}
