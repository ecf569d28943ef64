// Package langdetect classifies the script composition of a text span and
// recommends a chunking strategy plus a synthesis language tag for it.
// Classification is range-based over Unicode code points; it needs no models
// and never fails, degrading to unknown on unclassifiable input.
package langdetect

import (
	"unicode"

	"golang.org/x/text/language"

	"github.com/sevigo/speechsplit/schema"
)

// Ratio thresholds for the mixed-language override.
const (
	mixedLowerBound = 0.1
	mixedUpperBound = 0.9

	// Bonus applied when Japanese text carries both Kana and Kanji.
	kanaKanjiConfidenceBonus = 0.2

	// Minimum Japanese share for mixed text to still get the Japanese
	// chunking strategy.
	mixedJapaneseThreshold = 0.3
)

// charCounts holds per-script character tallies for one detection pass.
type charCounts struct {
	hiragana int
	katakana int
	kanji    int
	hangul   int
	latin    int
	digits   int
	other    int
}

func (c charCounts) total() int {
	return c.hiragana + c.katakana + c.kanji + c.hangul + c.latin + c.digits + c.other
}

func (c charCounts) japanese() int {
	return c.hiragana + c.katakana + c.kanji
}

// Detect classifies text by counting code points per script range. Ratios
// are computed against all classified characters, so digits and symbols
// dilute every language's share without belonging to one.
func Detect(text string) schema.DetectionResult {
	if text == "" {
		return unknownResult()
	}

	counts := countScripts(text)
	total := counts.total()
	if total == 0 {
		return unknownResult()
	}

	ratios := make(map[schema.Language]float64)
	if counts.japanese() > 0 {
		ratios[schema.LanguageJapanese] = float64(counts.japanese()) / float64(total)
	}
	if counts.latin > 0 {
		ratios[schema.LanguageEnglish] = float64(counts.latin) / float64(total)
	}
	if counts.hangul > 0 {
		ratios[schema.LanguageKorean] = float64(counts.hangul) / float64(total)
	}

	// Han characters without any Kana strongly suggest Chinese rather than
	// Japanese.
	if counts.kanji > 0 && counts.hiragana == 0 && counts.katakana == 0 {
		ratios[schema.LanguageChinese] = ratios[schema.LanguageJapanese]
		delete(ratios, schema.LanguageJapanese)
	}

	primary, best := schema.LanguageUnknown, 0.0
	for lang, ratio := range ratios {
		if ratio > best {
			primary, best = lang, ratio
		}
	}

	if countPartialRatios(ratios) > 1 {
		primary = schema.LanguageMixed
	}

	confidence := best
	if primary == schema.LanguageJapanese && counts.kanji > 0 && (counts.hiragana > 0 || counts.katakana > 0) {
		confidence += kanaKanjiConfidenceBonus
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	return schema.DetectionResult{
		Primary:    primary,
		Ratios:     ratios,
		Confidence: confidence,
	}
}

func unknownResult() schema.DetectionResult {
	return schema.DetectionResult{
		Primary: schema.LanguageUnknown,
		Ratios:  map[schema.Language]float64{},
	}
}

// countScripts tallies code points into script buckets. Whitespace and
// punctuation are excluded entirely; anything unrecognized counts toward the
// total but is attributed to no language.
func countScripts(text string) charCounts {
	var counts charCounts
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			// excluded from the total
		case r >= 0x3040 && r <= 0x309F:
			counts.hiragana++
		case r >= 0x30A0 && r <= 0x30FF:
			counts.katakana++
		case r >= 0x4E00 && r <= 0x9FAF:
			counts.kanji++
		case r >= 0xAC00 && r <= 0xD7AF:
			counts.hangul++
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			counts.latin++
		case r >= '0' && r <= '9':
			counts.digits++
		default:
			counts.other++
		}
	}
	return counts
}

// countPartialRatios counts languages whose share is substantial but not
// dominant, the signal for mixed-language text.
func countPartialRatios(ratios map[schema.Language]float64) int {
	count := 0
	for _, ratio := range ratios {
		if ratio > mixedLowerBound && ratio < mixedUpperBound {
			count++
		}
	}
	return count
}

// RecommendedStrategy maps a detection result to the chunking strategy that
// fits it best. Mixed text leans Japanese when the Japanese share is
// meaningful, since the fine-grained boundary search handles interleaved
// Latin text gracefully while the reverse does not hold.
func RecommendedStrategy(result schema.DetectionResult) schema.Strategy {
	switch result.Primary {
	case schema.LanguageJapanese:
		return schema.StrategyJapanese
	case schema.LanguageChinese:
		return schema.StrategyChinese
	case schema.LanguageKorean:
		return schema.StrategyKorean
	case schema.LanguageEnglish:
		return schema.StrategyEnglish
	case schema.LanguageMixed:
		if result.Ratios[schema.LanguageJapanese] > mixedJapaneseThreshold {
			return schema.StrategyJapanese
		}
		return schema.StrategyUniversal
	default:
		return schema.StrategyUniversal
	}
}

// SynthesisTag returns the BCP-47 tag to pass to the synthesis backend for
// the given language. Mixed text defaults to Japanese, unknown to English.
func SynthesisTag(lang schema.Language) language.Tag {
	switch lang {
	case schema.LanguageJapanese, schema.LanguageMixed:
		return language.MustParse("ja-JP")
	case schema.LanguageChinese:
		return language.MustParse("zh-CN")
	case schema.LanguageKorean:
		return language.MustParse("ko-KR")
	default:
		return language.MustParse("en-US")
	}
}
