package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "actual").
type Translator interface {
	Message(code string, data map[string]string) string
}

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang language.Tag }

var dictionaries = map[language.Tag]map[string]string{
	language.English: {
		"missing_required_field":    "required field missing",
		"unexpected_null":           "null is not allowed here",
		"type_mismatch":             "expected {expected}, got {actual}",
		"unknown_variant":           "unknown variant {discriminator}",
		"invalid_identifier_format": "invalid snowflake identifier",
		"invalid_timestamp_format":  "invalid ISO-8601 timestamp",
		"discriminator_missing":     "discriminator {discriminator} missing",
		"unknown_key":               "unknown key",
		"duplicate_key":             "duplicate key",
		"parse_error":               "parse error",
		"truncated":                 "truncated",
	},
	language.Japanese: {
		"missing_required_field":    "必須フィールドが不足しています",
		"unexpected_null":           "null は許可されていません",
		"type_mismatch":             "{expected} が必要ですが {actual} でした",
		"unknown_variant":           "未知のバリアントです: {discriminator}",
		"invalid_identifier_format": "snowflake ID の形式が不正です",
		"invalid_timestamp_format":  "ISO-8601 タイムスタンプの形式が不正です",
		"discriminator_missing":     "判別子 {discriminator} がありません",
		"unknown_key":               "未知のキーです",
		"duplicate_key":             "キーが重複しています",
		"parse_error":               "解析エラー",
		"truncated":                 "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if strings.IndexByte(msg, '{') < 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: language.English}
)

// SetLanguage switches the built-in Translator to the closest supported
// language for a BCP 47 tag or Accept-Language list ("ja-JP", "en;q=0.8").
// Unsupported or malformed input falls back to English.
func SetLanguage(lang string) {
	tag := Match(lang)
	mu.Lock()
	currentTranslator = dictTranslator{lang: tag}
	mu.Unlock()
}

// Match returns the supported language closest to lang.
func Match(lang string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: language.English}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
