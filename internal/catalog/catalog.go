// Package catalog は提供サービスの静的カタログを定義する。
//
// カタログはコードに埋め込まれた固定データであり、英語とタミル語の
// 2言語に対応する。サービスエリア管理と問い合わせフォームは
// このカタログのサービスIDのみを受け付ける。
package catalog

// 対応言語。
const (
	LangEnglish = "en"
	LangTamil   = "ta"
)

// Text は言語ごとの文字列を保持する。
type Text struct {
	EN string `json:"en"`
	TA string `json:"ta"`
}

// In は指定言語のテキストを返す。未対応の言語には英語を返す。
func (t Text) In(lang string) string {
	if lang == LangTamil {
		return t.TA
	}
	return t.EN
}

// SubService はサービス内の個別メニューを表す。
type SubService struct {
	Name        Text `json:"name"`
	Description Text `json:"description"`
	// Price は開始価格（ルピー）。
	Price int `json:"price"`
}

// Service は提供サービスを表す。
type Service struct {
	ID          string       `json:"id"`
	Title       Text         `json:"title"`
	Description Text         `json:"description"`
	SubServices []SubService `json:"subServices"`
}

// LocalizedSubService は単一言語に解決されたサブサービス。
type LocalizedSubService struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// LocalizedService は単一言語に解決されたサービス。
type LocalizedService struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	SubServices []LocalizedSubService `json:"subServices"`
}

// services はカタログの全サービス。宣言順が表示順。
var services = []Service{
	{
		ID: "home-care",
		Title: Text{
			EN: "Home Care Nursing",
			TA: "வீட்டு பராமரிப்பு செவிலியர் சேவை",
		},
		Description: Text{
			EN: "Qualified nurses for post-operative care, elderly care and chronic condition support at your home.",
			TA: "அறுவை சிகிச்சைக்கு பிந்தைய பராமரிப்பு, முதியோர் பராமரிப்பு மற்றும் நாள்பட்ட நோய் ஆதரவுக்காக தகுதிவாய்ந்த செவிலியர்கள் உங்கள் வீட்டிற்கு.",
		},
		SubServices: []SubService{
			{
				Name:        Text{EN: "Post-operative Care", TA: "அறுவை சிகிச்சைக்கு பின் பராமரிப்பு"},
				Description: Text{EN: "Wound dressing, medication management and recovery monitoring.", TA: "காயம் கட்டுதல், மருந்து மேலாண்மை மற்றும் மீட்பு கண்காணிப்பு."},
				Price:       800,
			},
			{
				Name:        Text{EN: "Elderly Care", TA: "முதியோர் பராமரிப்பு"},
				Description: Text{EN: "Daily assistance, vitals monitoring and companionship for seniors.", TA: "முதியவர்களுக்கு அன்றாட உதவி, உடல்நிலை கண்காணிப்பு மற்றும் துணை."},
				Price:       600,
			},
			{
				Name:        Text{EN: "Injection & IV Services", TA: "ஊசி மற்றும் IV சேவைகள்"},
				Description: Text{EN: "Injections, IV infusion and catheter care administered at home.", TA: "வீட்டிலேயே ஊசி, IV உட்செலுத்துதல் மற்றும் குழாய் பராமரிப்பு."},
				Price:       300,
			},
		},
	},
	{
		ID: "rehabilitation",
		Title: Text{
			EN: "Rehabilitation & Physiotherapy",
			TA: "மறுவாழ்வு மற்றும் இயன்முறை மருத்துவம்",
		},
		Description: Text{
			EN: "Physiotherapy sessions at home for stroke recovery, joint pain and mobility improvement.",
			TA: "பக்கவாத மீட்பு, மூட்டு வலி மற்றும் இயக்கத்திறன் மேம்பாட்டிற்கான வீட்டு இயன்முறை சிகிச்சை.",
		},
		SubServices: []SubService{
			{
				Name:        Text{EN: "Stroke Rehabilitation", TA: "பக்கவாத மறுவாழ்வு"},
				Description: Text{EN: "Structured therapy plans to regain strength and movement.", TA: "வலிமையும் இயக்கமும் மீண்டும் பெற கட்டமைக்கப்பட்ட சிகிச்சை திட்டங்கள்."},
				Price:       700,
			},
			{
				Name:        Text{EN: "Ortho Physiotherapy", TA: "எலும்பு இயன்முறை சிகிச்சை"},
				Description: Text{EN: "Joint pain relief and post-fracture mobilisation.", TA: "மூட்டு வலி நிவாரணம் மற்றும் எலும்பு முறிவுக்கு பிந்தைய இயக்கம்."},
				Price:       500,
			},
		},
	},
	{
		ID: "primary-care",
		Title: Text{
			EN: "Primary Care at Home",
			TA: "வீட்டிலேயே முதன்மை சிகிச்சை",
		},
		Description: Text{
			EN: "Doctor consultations, health checkups and lab sample collection at your doorstep.",
			TA: "மருத்துவர் ஆலோசனை, உடல்நல பரிசோதனை மற்றும் ஆய்வக மாதிரி சேகரிப்பு உங்கள் வீட்டு வாசலில்.",
		},
		SubServices: []SubService{
			{
				Name:        Text{EN: "Doctor Home Visit", TA: "மருத்துவர் வீட்டு வருகை"},
				Description: Text{EN: "General physician consultation at home.", TA: "வீட்டிலேயே பொது மருத்துவர் ஆலோசனை."},
				Price:       1000,
			},
			{
				Name:        Text{EN: "Lab Sample Collection", TA: "ஆய்வக மாதிரி சேகரிப்பு"},
				Description: Text{EN: "Blood and urine sample collection with digital reports.", TA: "இரத்தம் மற்றும் சிறுநீர் மாதிரி சேகரிப்பு, டிஜிட்டல் அறிக்கைகளுடன்."},
				Price:       200,
			},
		},
	},
	{
		ID: "medical-equipment",
		Title: Text{
			EN: "Medical Equipment Rental",
			TA: "மருத்துவ உபகரண வாடகை",
		},
		Description: Text{
			EN: "Hospital beds, wheelchairs, oxygen concentrators and more delivered and installed at home.",
			TA: "மருத்துவமனை படுக்கைகள், சக்கர நாற்காலிகள், ஆக்சிஜன் செறிவூட்டிகள் மற்றும் பலவும் வீட்டிற்கு வழங்கி நிறுவப்படும்.",
		},
		SubServices: []SubService{
			{
				Name:        Text{EN: "Hospital Bed", TA: "மருத்துவமனை படுக்கை"},
				Description: Text{EN: "Manual and motorised beds on monthly rental.", TA: "மாத வாடகையில் கைமுறை மற்றும் மின்சார படுக்கைகள்."},
				Price:       2500,
			},
			{
				Name:        Text{EN: "Oxygen Concentrator", TA: "ஆக்சிஜன் செறிவூட்டி"},
				Description: Text{EN: "5L and 10L concentrators with same-day delivery.", TA: "5L மற்றும் 10L செறிவூட்டிகள், அன்றே விநியோகம்."},
				Price:       4000,
			},
			{
				Name:        Text{EN: "Wheelchair", TA: "சக்கர நாற்காலி"},
				Description: Text{EN: "Foldable wheelchairs for rent or purchase.", TA: "மடக்கக்கூடிய சக்கர நாற்காலிகள் வாடகைக்கு அல்லது விற்பனைக்கு."},
				Price:       800,
			},
		},
	},
}

// index はサービスIDからの逆引き。
var index = func() map[string]*Service {
	m := make(map[string]*Service, len(services))
	for i := range services {
		m[services[i].ID] = &services[i]
	}
	return m
}()

// Services は全サービスを宣言順で返す。
func Services() []Service {
	return services
}

// FindByID は指定IDのサービスを返す。存在しない場合はnilを返す。
func FindByID(id string) *Service {
	return index[id]
}

// IsKnown は指定IDがカタログに存在するかを返す。
func IsKnown(id string) bool {
	_, ok := index[id]
	return ok
}

// ForLanguage は指定言語に解決したカタログを返す。
// 未対応の言語は英語にフォールバックする。
func ForLanguage(lang string) []LocalizedService {
	result := make([]LocalizedService, 0, len(services))
	for _, svc := range services {
		localized := LocalizedService{
			ID:          svc.ID,
			Title:       svc.Title.In(lang),
			Description: svc.Description.In(lang),
			SubServices: make([]LocalizedSubService, 0, len(svc.SubServices)),
		}
		for _, sub := range svc.SubServices {
			localized.SubServices = append(localized.SubServices, LocalizedSubService{
				Name:        sub.Name.In(lang),
				Description: sub.Description.In(lang),
				Price:       sub.Price,
			})
		}
		result = append(result, localized)
	}
	return result
}
