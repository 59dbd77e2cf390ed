// Package report renders generated and inspected secrets for a human operator.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"otpsecret/internal/secret"
)

const width = 60

var rule = strings.Repeat("=", width)

// Generation is everything the guidance needs about one generated secret.
type Generation struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Variable    string        `json:"variable"`
	Secret      secret.Secret `json:"secret"`
	Length      int           `json:"length"`
	Format      string        `json:"format"`
	Valid       bool          `json:"valid"`
	Fingerprint string        `json:"fingerprint"`
	Platform    string        `json:"platform"`
	App         string        `json:"app"`
	Rerun       string        `json:"-"`
}

// WriteGeneration prints the guidance block around the secret.
// The assignment line VARIABLE=<secret> is written exactly once.
func WriteGeneration(w io.Writer, g Generation) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "🔐 %s GENERATED SUCCESSFULLY\n", g.Variable)
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "%s=%s\n\n", g.Variable, g.Secret)

	b.WriteString("📊 مشخصات کلید:\n")
	fmt.Fprintf(&b, "• طول: %d کاراکتر\n", g.Length)
	fmt.Fprintf(&b, "• فرمت: %s\n", g.Format)
	b.WriteString("• امنیت: AES-256 Compatible\n")
	fmt.Fprintf(&b, "• اثر انگشت: %s\n\n", g.Fingerprint)

	fmt.Fprintf(&b, "⚙️ تنظیم در %s:\n", g.Platform)
	fmt.Fprintf(&b, "پنل %s → اپ %s → متغیرهای محیطی\n", g.Platform, g.App)
	fmt.Fprintf(&b, "متغیر %s را با مقدار بالا اضافه کنید\n\n", g.Variable)

	b.WriteString("🔒 نکات امنیتی:\n")
	b.WriteString("• این کلید را با دیگران به اشتراک نگذارید\n")
	b.WriteString("• کلید را در متغیرهای محیطی نگه دارید\n")
	b.WriteString("• هرگز کلید را در کد قرار ندهید\n")
	b.WriteString("• کلید را منظماً تغییر دهید\n\n")

	b.WriteString("✅ کلید شما آماده استفاده است!\n")
	b.WriteString(rule + "\n\n")

	if g.Valid {
		b.WriteString("✅ کلید معتبر است\n\n")
	} else {
		b.WriteString("❌ کلید نامعتبر است\n\n")
	}

	b.WriteString("💡 اگر نیاز به کلید جدید دارید، دوباره اجرا کنید:\n")
	b.WriteString(g.Rerun + "\n")
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGenerationJSON prints the generation as a single JSON object.
func WriteGenerationJSON(w io.Writer, g Generation) error {
	return writeJSON(w, g)
}

// Check is the result of inspecting a configured secret.
type Check struct {
	Variable   string            `json:"variable"`
	Source     string            `json:"source"`
	Inspection secret.Inspection `json:"inspection"`
	Valid      bool              `json:"valid"`
	SampleCode string            `json:"sample_code,omitempty"`
	CheckedAt  time.Time         `json:"checked_at"`
}

// WriteCheck prints a human readable inspection report.
func WriteCheck(w io.Writer, c Check) error {
	var b strings.Builder
	in := c.Inspection

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "🔎 %s CHECK (%s)\n", c.Variable, c.Source)
	b.WriteString(rule + "\n\n")

	if in.Length == 0 {
		fmt.Fprintf(&b, "❌ %s تنظیم نشده است\n", c.Variable)
		fmt.Fprintf(&b, "متغیر %s را در پنل تنظیم کنید\n", c.Variable)
		b.WriteString(rule + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "• طول: %d کاراکتر\n", in.Length)
	fmt.Fprintf(&b, "• پیش‌نمایش: %s\n", in.Preview)
	fmt.Fprintf(&b, "• کاراکترهای منحصر به فرد: %d\n", in.UniqueChars)
	fmt.Fprintf(&b, "• اثر انگشت: %s\n\n", in.Fingerprint)

	if c.Valid {
		b.WriteString("✅ کلید معتبر است\n")
		if c.SampleCode != "" {
			fmt.Fprintf(&b, "• کد نمونه: %s\n", c.SampleCode)
		}
	} else {
		b.WriteString("❌ کلید نامعتبر است\n")
		for _, p := range in.Problems {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
		b.WriteString("کلید جدید تولید کنید\n")
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCheckJSON prints the inspection as a single JSON object.
func WriteCheckJSON(w io.Writer, c Check) error {
	return writeJSON(w, c)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
