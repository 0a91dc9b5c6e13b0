package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gezi/internal/models/request_models"
)

// SystemPrompt fixes the output schema the model must follow.
const SystemPrompt = `Sen bir gezi planlayıcısısın. Verilen bilgilere göre gezi planı oluştur.

SADECE JSON formatında yanıt ver. Başka hiçbir şey yazma, markdown kullanma:

{
  "summary": "Plan özeti",
  "estimatedTotalCost": 500,
  "currency": "TRY",
  "language": "tr",
  "stops": [
    {
      "timeRange": "09:00 - 10:30",
      "placeName": "Mekan",
      "address": "Adres",
      "description": "Açıklama",
      "reason": "Neden",
      "estimatedCost": 50,
      "crowd": "az | orta | yoğun",
      "transport": "Yürüyerek",
      "lat": 41.0,
      "lng": 28.9,
      "rating": 4.5,
      "ratingCount": 100,
      "priceLevel": 2,
      "category": "Kahvaltı",
      "duration": 90
    }
  ],
  "tips": ["İpucu 1"]
}

Kurallar:
- 3-5 durak oluştur, duraklar zaman sırasına göre olsun.
- Koordinatlardan emin değilsen "lat" ve "lng" için null yaz. Asla tahmini koordinat uydurma.
- "priceLevel" 1 ile 4 arasında bir tam sayı, "duration" dakika cinsinden olsun.`

var mobilityPhrases = map[string]string{
	"walk":   "Yürüyerek",
	"public": "Toplu taşıma",
	"taxi":   "Taksi",
}

var crowdPhrases = map[string]string{
	"avoid":  "Kalabalık yerlerden kaçın",
	"prefer": "Canlı ve kalabalık yerleri tercih et",
	"any":    "Fark etmez",
}

var qualityPhrases = map[string]string{
	"fast":     "Açıklamaları kısa tut (en fazla bir cümle).",
	"balanced": "Açıklamalar iki-üç cümle olsun.",
	"detailed": "Her durak için ayrıntılı açıklama ve seçilme nedeni yaz.",
}

var languageNames = map[string]string{
	"tr": "Türkçe",
	"en": "İngilizce",
}

func lookupPhrase(table map[string]string, key string) string {
	if phrase, ok := table[strings.ToLower(strings.TrimSpace(key))]; ok {
		return phrase
	}
	return key
}

// BuildPlanPrompt renders the user message for a new plan. It is a pure
// function of req; missing fields take their documented defaults.
func BuildPlanPrompt(req request_models.PlanRequest) string {
	req = req.WithDefaults()

	interests := strings.Join(req.Interests, ", ")
	if strings.TrimSpace(interests) == "" {
		interests = "Genel"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Şehir: %s\n", req.City)
	fmt.Fprintf(&b, "Tarih: %s\n", req.Date)
	fmt.Fprintf(&b, "Süre: %s saat (%s'dan başla)\n", formatNumber(req.Hours), req.StartTime)
	fmt.Fprintf(&b, "Bütçe: %s %s\n", formatNumber(req.Budget), req.Currency)
	fmt.Fprintf(&b, "İlgi alanları: %s\n", interests)
	fmt.Fprintf(&b, "Kalabalık: %s\n", lookupPhrase(crowdPhrases, req.CrowdPreference))
	fmt.Fprintf(&b, "Ulaşım: %s\n", lookupPhrase(mobilityPhrases, req.Mobility))
	if req.SpecialRequest != "" {
		fmt.Fprintf(&b, "Özel istek: %s\n", req.SpecialRequest)
	}
	fmt.Fprintf(&b, "Dil: %s (\"language\": \"%s\")\n", languageNames[req.Language], req.Language)
	fmt.Fprintf(&b, "Para birimi: %s\n", req.Currency)
	fmt.Fprintf(&b, "Detay: %s\n", lookupPhrase(qualityPhrases, req.QualityMode))
	b.WriteString("\n3-5 durak içeren plan oluştur. Emin olmadığın koordinatlar için null yaz. SADECE JSON döndür.")

	return b.String()
}

// BuildRevisionPrompt renders the chat message that asks the model to update
// an existing plan.
func BuildRevisionPrompt(plan json.RawMessage, message string) (string, error) {
	var current any
	if err := json.Unmarshal(plan, &current); err != nil {
		return "", fmt.Errorf("decode current plan: %w", err)
	}
	pretty, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode current plan: %w", err)
	}

	return fmt.Sprintf(`Mevcut plan:
%s

Kullanıcı: %s

Planı güncelle. Aynı "id" ve "language" değerlerini koru. 3-5 durak olsun, emin olmadığın koordinatlar için null yaz. SADECE JSON döndür.`,
		pretty, strings.TrimSpace(message)), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
