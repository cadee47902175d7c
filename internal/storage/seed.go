package storage

import "github.com/hungrypeople/feast/internal/model"

// DefaultPolicyRules is the one-time seed set for the policy rule catalog.
// One rule per spending category.
func DefaultPolicyRules() []model.PolicyRule {
	return []model.PolicyRule{
		{
			Category:             "refreshments",
			RuleText:             "다과비는 카페, 베이커리, 디저트 전문점에서만 사용 가능",
			RequiredReceiptTypes: []model.ReceiptType{model.ReceiptCardSlip, model.ReceiptTaxInvoice},
			AllowedVenueTypes:    []string{"카페", "베이커리", "디저트", "커피전문점"},
			Notes:                "카드전표 또는 세금계산서 필수",
		},
		{
			Category:             "meeting",
			RuleText:             "회의비는 조용한 환경의 업소에서 사용 가능",
			RequiredReceiptTypes: []model.ReceiptType{model.ReceiptCardSlip, model.ReceiptTaxInvoice},
			AllowedVenueTypes:    []string{"한식", "중식", "일식", "양식", "퓨전"},
			Notes:                "개인룸 보유 또는 조용한 환경 필요",
		},
		{
			Category:             "transport",
			RuleText:             "교통비는 대중교통, 택시, 주차비 등에 사용",
			RequiredReceiptTypes: []model.ReceiptType{model.ReceiptCardSlip, model.ReceiptTaxInvoice, model.ReceiptNone},
			AllowedVenueTypes:    []string{"교통", "주차", "택시"},
			Notes:                "교통 관련 비용만 인정",
		},
		{
			Category:             "meals",
			RuleText:             "식비는 일반 음식점에서 사용 가능",
			RequiredReceiptTypes: []model.ReceiptType{model.ReceiptCardSlip, model.ReceiptTaxInvoice},
			AllowedVenueTypes:    []string{"한식", "중식", "일식", "양식", "퓨전", "패스트푸드"},
			Notes:                "음식점에서의 식사 비용",
		},
	}
}

// SampleVenues is a small certified-venue catalog for development and demos.
func SampleVenues() []model.Venue {
	return []model.Venue{
		{ID: 1, Name: "늘채움", Address: "전북 전주시 덕진구 덕진연못3길 6", Region: "전북", VenueType: "한식", NoiseLevel: model.NoiseLow, MaxPartySize: 10, HasPrivateRoom: true, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 2, Name: "대림동삼거리먼지막순대국", Address: "서울 영등포구 시흥대로 185길 11", Region: "서울", VenueType: "한식", NoiseLevel: model.NoiseMid, MaxPartySize: 8, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 3, Name: "만석장", Address: "서울 은평구 대서문길 43-10 2층", Region: "서울", VenueType: "한식", NoiseLevel: model.NoiseMid, MaxPartySize: 24, HasPrivateRoom: true, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 4, Name: "선천집", Address: "서울 종로구 인사동 14길5", Region: "서울", VenueType: "한식", NoiseLevel: model.NoiseLow, MaxPartySize: 12, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 5, Name: "고려회관", Address: "대전 중구 중앙로109번길 30, 2층", Region: "대전", VenueType: "한식", NoiseLevel: model.NoiseLow, MaxPartySize: 20, HasPrivateRoom: true, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 6, Name: "극동제과점", Address: "대전 중구 충무로 73", Region: "대전", VenueType: "베이커리", NoiseLevel: model.NoiseMid, MaxPartySize: 8, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 7, Name: "귀빈돌솥밥", Address: "대전 서구 만년로68번길 21", Region: "대전", VenueType: "한식", NoiseLevel: model.NoiseMid, MaxPartySize: 12, HasPrivateRoom: true, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 8, Name: "나이테플라워", Address: "대전 중구 대둔산로 384", Region: "대전", VenueType: "카페", NoiseLevel: model.NoiseLow, MaxPartySize: 6, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 9, Name: "부산돼지국밥", Address: "부산 중구 중앙대로 26", Region: "부산", VenueType: "한식", NoiseLevel: model.NoiseHigh, MaxPartySize: 10, TaxInvoiceSupported: true, CardPaymentSupported: true},
		{ID: 10, Name: "대구막창집", Address: "대구 중구 동성로 123", Region: "대구", VenueType: "한식", NoiseLevel: model.NoiseHigh, MaxPartySize: 16, TaxInvoiceSupported: true, CardPaymentSupported: true},
	}
}

// SampleEvents is a small event catalog for development and demos.
func SampleEvents() []model.Event {
	return []model.Event{
		{ID: 1, Organization: "홍보협력팀", Name: "2023 연구개발특구 신년인사회", HostOrganization: "연구개발특구진흥재단", Region: "대덕특구", Location: "대전 DCC", TechCategory: "기타", Hashtags: "#신년인사회", StartDate: "2023-01-30", EndDate: "2023-01-30"},
		{ID: 2, Organization: "연구개발특구진흥재단", Name: "환경기후분야 국내외 R&BD 활성화를 위한 심포지움", HostOrganization: "인천대학교 환경공학과", Region: "과학벨트", Location: "경원재 엠배서더(인천 송도)", TechCategory: "ET,기타", Hashtags: "#환경", StartDate: "2023-01-12", EndDate: "2023-01-12"},
		{ID: 3, Organization: "연구개발특구진흥재단", Name: "대구디지털혁신진흥원 2023년 지원사업 설명회", HostOrganization: "(재)대구디지털혁신진흥원", Region: "대구특구", Location: "온라인", TechCategory: "기타", Hashtags: "#유관기관", StartDate: "2023-01-19", EndDate: "2023-01-19"},
		{ID: 4, Organization: "연구개발특구진흥재단", Name: "제6차 지방과학기술진흥종합계획 공유회", HostOrganization: "한국과학기술기획평가원(KISTEP)", Region: "부산특구", Location: "부산 아스티호텔", TechCategory: "기타", Hashtags: "#과학기술", StartDate: "2023-01-11", EndDate: "2023-01-11"},
		{ID: 5, Organization: "특구진흥원", Name: "전북대학교 2023 LINC 혁신성장캠프", HostOrganization: "전북대학교", Region: "전북특구", Location: "전북대학교 중앙도서관", TechCategory: "기타", Hashtags: "#전북대학교", StartDate: "2023-01-12", EndDate: "2023-01-13"},
	}
}
