// Package content はマーケティングページの静的文言を言語別に提供する。
//
// 対応言語は英語(en)とタミル語(ta)の2つ。文言はコードに埋め込まれた
// 固定データであり、未対応の言語には英語を返す。
package content

import "github.com/karthik/caremate/internal/catalog"

// Page はマーケティングページの文言一式を表す。
type Page struct {
	Lang     string                     `json:"lang"`
	Nav      Nav                        `json:"nav"`
	Hero     Hero                       `json:"hero"`
	Services []catalog.LocalizedService `json:"services"`
	Contact  Contact                    `json:"contact"`
	Footer   Footer                     `json:"footer"`
}

// Nav はナビゲーションの文言。
type Nav struct {
	Home     string `json:"home"`
	Services string `json:"services"`
	Contact  string `json:"contact"`
	SignIn   string `json:"signIn"`
	SignOut  string `json:"signOut"`
}

// Hero はトップセクションの文言。
type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTA      string `json:"cta"`
}

// Contact は問い合わせフォームの文言。
type Contact struct {
	Title       string `json:"title"`
	NameLabel   string `json:"nameLabel"`
	PhoneLabel  string `json:"phoneLabel"`
	MessageLabel string `json:"messageLabel"`
	Submit      string `json:"submit"`
	Success     string `json:"success"`
}

// Footer はフッターの文言。
type Footer struct {
	Tagline   string `json:"tagline"`
	Copyright string `json:"copyright"`
}

var pages = map[string]Page{
	catalog.LangEnglish: {
		Lang: catalog.LangEnglish,
		Nav: Nav{
			Home:     "Home",
			Services: "Services",
			Contact:  "Contact",
			SignIn:   "Sign In",
			SignOut:  "Sign Out",
		},
		Hero: Hero{
			Title:    "Quality Healthcare at Your Doorstep",
			Subtitle: "Trusted nurses, physiotherapists and doctors for home care across Chennai.",
			CTA:      "Book a Service",
		},
		Contact: Contact{
			Title:        "Get in Touch",
			NameLabel:    "Your Name",
			PhoneLabel:   "Phone Number",
			MessageLabel: "How can we help?",
			Submit:       "Send Enquiry",
			Success:      "Thank you! We will call you back shortly.",
		},
		Footer: Footer{
			Tagline:   "Care that comes home.",
			Copyright: "© CareMate Health Services",
		},
	},
	catalog.LangTamil: {
		Lang: catalog.LangTamil,
		Nav: Nav{
			Home:     "முகப்பு",
			Services: "சேவைகள்",
			Contact:  "தொடர்பு",
			SignIn:   "உள்நுழைய",
			SignOut:  "வெளியேறு",
		},
		Hero: Hero{
			Title:    "தரமான சுகாதார சேவை உங்கள் வீட்டு வாசலில்",
			Subtitle: "சென்னை முழுவதும் வீட்டு பராமரிப்புக்கு நம்பகமான செவிலியர்கள், இயன்முறை நிபுணர்கள் மற்றும் மருத்துவர்கள்.",
			CTA:      "சேவையை முன்பதிவு செய்யுங்கள்",
		},
		Contact: Contact{
			Title:        "தொடர்பு கொள்ளுங்கள்",
			NameLabel:    "உங்கள் பெயர்",
			PhoneLabel:   "தொலைபேசி எண்",
			MessageLabel: "நாங்கள் எப்படி உதவலாம்?",
			Submit:       "விசாரணையை அனுப்பு",
			Success:      "நன்றி! விரைவில் உங்களை அழைப்போம்.",
		},
		Footer: Footer{
			Tagline:   "வீட்டிற்கே வரும் பராமரிப்பு.",
			Copyright: "© கேர்மேட் சுகாதார சேவைகள்",
		},
	},
}

// ForLanguage は指定言語のページ文言を返す。
// サービス一覧はカタログから同じ言語で解決される。
// 未対応の言語には英語を返す。
func ForLanguage(lang string) Page {
	page, ok := pages[lang]
	if !ok {
		page = pages[catalog.LangEnglish]
	}
	page.Services = catalog.ForLanguage(page.Lang)
	return page
}

// SupportedLanguages は対応言語の一覧を返す。
func SupportedLanguages() []string {
	return []string{catalog.LangEnglish, catalog.LangTamil}
}
