// Package ingest loads venue and event catalogs from CSV exports. Source
// files are Korean government data and arrive in a mix of UTF-8 and CP949
// encodings.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/hungrypeople/feast/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads a CSV file and decodes it to UTF-8, falling back to CP949
// (EUC-KR) when the content is not valid UTF-8.
func ReadFile(path string) ([]map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		decoded, _, decErr := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
		if decErr != nil {
			return nil, fmt.Errorf("failed to decode %s as CP949: %w", path, decErr)
		}
		raw = decoded
	}

	return parseRecords(raw)
}

// parseRecords reads CSV content into header-keyed row maps.
func parseRecords(content []byte) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadVenues loads the certified-venue CSV (연번/업체명/업체주소/연락처
// columns) and enriches each row with the attributes the policy filter
// needs: venue type, private room, noise level and receipt support.
func LoadVenues(path string) ([]model.Venue, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	venues := make([]model.Venue, 0, len(rows))
	for i, row := range rows {
		name := row["업체명"]
		address := row["업체주소"]
		if name == "" || address == "" {
			continue
		}

		id, err := strconv.ParseInt(row["연번"], 10, 64)
		if err != nil || id <= 0 {
			id = int64(i + 1)
		}

		venue := model.Venue{
			ID:      id,
			Name:    name,
			Address: address,
			Phone:   row["연락처"],
			Region:  extractRegion(address),
		}
		enrichVenue(&venue)
		venues = append(venues, venue)
	}

	return venues, nil
}

// LoadEvents loads the event-schedule CSV with its Korean column headers.
func LoadEvents(path string) ([]model.Event, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(rows))
	for i, row := range rows {
		name := row["행사명"]
		if name == "" {
			continue
		}

		id, err := strconv.ParseInt(row["순번"], 10, 64)
		if err != nil || id <= 0 {
			id = int64(i + 1)
		}

		events = append(events, model.Event{
			ID:               id,
			Organization:     row["기관명"],
			Name:             name,
			HostOrganization: row["주관기관명"],
			Region:           row["행사지역"],
			Location:         row["행사장소"],
			TechCategory:     row["기술 분류"],
			Hashtags:         row["해시태그"],
			StartDate:        row["행사기간-시작일"],
			EndDate:          row["행사기간-종료일"],
		})
	}

	return events, nil
}

// regionPrefixes maps address prefixes to catalog regions.
var regionPrefixes = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종",
	"경기", "강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
}

// extractRegion pulls the administrative region from the front of an address.
func extractRegion(address string) string {
	for _, region := range regionPrefixes {
		if strings.HasPrefix(address, region) {
			return region
		}
	}
	return ""
}

// Venue-type classification keywords, applied in order against the name.
var venueTypeKeywords = []struct {
	venueType string
	keywords  []string
}{
	{"카페", []string{"카페", "커피", "스타벅스", "투썸", "이디야", "커피빈"}},
	{"베이커리", []string{"베이커리", "빵집", "제과", "제빵", "도넛", "케이크"}},
	{"디저트", []string{"디저트", "아이스크림", "젤라토", "마카롱", "타르트"}},
	{"한식", []string{"한식", "김치찌개", "된장찌개", "비빔밥", "불고기", "삼겹살", "갈비", "국밥", "순대", "돌솥밥"}},
	{"중식", []string{"중식", "짜장면", "짬뽕", "탕수육", "중화요리", "만두"}},
	// 회 over-matches 회관-style hall names; kept for recall on raw-fish
	// places, which dominate the source data.
	{"일식", []string{"일식", "초밥", "라멘", "우동", "돈카츠", "회"}},
	{"양식", []string{"양식", "스테이크", "파스타", "피자", "햄버거", "샐러드"}},
	{"퓨전", []string{"퓨전", "모던", "크리에이티브"}},
	{"패스트푸드", []string{"맥도날드", "버거킹", "롯데리아", "KFC", "서브웨이"}},
}

var (
	privateRoomKeywords = []string{"룸", "방", "개인실", "VIP", "단체실", "회의실"}
	quietKeywords       = []string{"조용", "한적", "아늑", "편안", "고요"}
)

// enrichVenue fills in the policy-matching attributes the source data does
// not carry, classified from the venue name. Certified venues can almost
// always issue tax invoices.
func enrichVenue(v *model.Venue) {
	v.VenueType = classifyVenueType(v.Name)
	v.HasPrivateRoom = containsAny(v.Name, privateRoomKeywords)
	v.NoiseLevel = model.NoiseMid
	if containsAny(v.Name, quietKeywords) {
		v.NoiseLevel = model.NoiseLow
	}
	v.MaxPartySize = 4
	v.TaxInvoiceSupported = true
	v.CardPaymentSupported = true
}

func classifyVenueType(name string) string {
	for _, entry := range venueTypeKeywords {
		if containsAny(name, entry.keywords) {
			return entry.venueType
		}
	}
	return "기타"
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
