package overlay

// UICatalog is the fixed set of interface strings, in the source language.
var UICatalog = map[string]string{
	"home":               "홈",
	"listings":           "매물 목록",
	"favorites":          "찜한 매물",
	"login":              "로그인",
	"logout":             "로그아웃",
	"register":           "회원가입",
	"adminMode":          "관리자 모드",
	"deposit":            "보증금",
	"monthlyRent":        "월세",
	"maintenanceFee":     "관리비",
	"maintenanceUnknown": "관리비 정보 없음",
	"noMaintenanceFee":   "관리비 없음",
	"description":        "상세 설명",
	"address":            "주소",
	"category":           "카테고리",
	"originalListing":    "원본 매물 보기",
	"inquiries":          "문의",
	"writeInquiry":       "문의 남기기",
	"adminOnly":          "관리자만 보기",
	"hiddenInquiry":      "관리자만 볼 수 있는 문의입니다.",
	"adminReply":         "관리자 답변",
	"trash":              "휴지통",
	"restore":            "복원",
	"purge":              "영구 삭제",
	"notFound":           "매물을 찾을 수 없습니다.",
	"inactive":           "거래 완료",
	"language":           "언어",
	"noListings":         "등록된 매물이 없습니다.",
}
