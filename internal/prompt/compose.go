// Package prompt composes the system instruction sent to the model
// oracle: a language-specific base template, then an optional patient
// context block, then an optional biomarker summary block, in that
// fixed order.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/healbot/medconsult/internal/biomarker"
	"github.com/healbot/medconsult/internal/language"
	"github.com/healbot/medconsult/internal/patients"
)

var divider = strings.Repeat("=", 50)

// Compose builds the full system instruction for the resolved language.
// Absent patient or biomarker data degrades to the bare template; no
// block is ever replaced or reordered, only appended.
func Compose(lang language.Code, record *patients.Record, report *biomarker.Report) string {
	var b strings.Builder
	if lang == language.Arabic {
		b.WriteString(doctorSystemPromptAR)
	} else {
		b.WriteString(doctorSystemPromptEN)
	}
	if record != nil {
		b.WriteString(patientBlock(record, lang))
	}
	if report != nil {
		b.WriteString(biomarkerBlock(report, lang))
	}
	return b.String()
}

// patientBlock formats the patient record for the chat context. The
// English block carries the last 5 visits plus vitals; the Arabic block
// carries the last 3 visits and no vitals. That asymmetry is part of
// the observable contract.
func patientBlock(record *patients.Record, lang language.Code) string {
	var b strings.Builder

	if lang == language.Arabic {
		b.WriteString("\n\n" + divider + "\n")
		b.WriteString("⚠️ معلومات المريض المهمة - يجب مراعاتها في كل رد:\n")
		b.WriteString(divider + "\n")

		if info := record.PersonalInfo; info != nil {
			fmt.Fprintf(&b, "👤 الاسم: %s\n", orNA(info.Name))
			fmt.Fprintf(&b, "📅 العمر: %s\n", orNA(info.Age.String()))
			fmt.Fprintf(&b, "⚧ الجنس: %s\n", orNA(info.Gender))
		}
		if len(record.MedicalHistory) > 0 {
			b.WriteString("\n📋 التاريخ الطبي:\n")
			for _, condition := range record.MedicalHistory {
				fmt.Fprintf(&b, "• %s\n", condition)
			}
		}
		if len(record.Medications) > 0 {
			b.WriteString("\n💊 الأدوية الحالية:\n")
			for _, med := range record.Medications {
				fmt.Fprintf(&b, "• %s\n", med)
			}
		}
		if len(record.Allergies) > 0 {
			b.WriteString("\n⚠️ الحساسيات:\n")
			for _, allergy := range record.Allergies {
				fmt.Fprintf(&b, "• %s\n", allergy)
			}
		}
		if len(record.PreviousVisits) > 0 {
			b.WriteString("\n📅 الزيارات السابقة:\n")
			for _, visit := range lastN(record.PreviousVisits, 3) {
				fmt.Fprintf(&b, "• %s\n", visit)
			}
		}
	} else {
		b.WriteString("\n\n" + divider + "\n")
		b.WriteString("⚠️ IMPORTANT PATIENT INFORMATION - Consider in EVERY response:\n")
		b.WriteString(divider + "\n")

		if info := record.PersonalInfo; info != nil {
			fmt.Fprintf(&b, "👤 Name: %s\n", orNA(info.Name))
			fmt.Fprintf(&b, "📅 Age: %s\n", orNA(info.Age.String()))
			fmt.Fprintf(&b, "⚧ Gender: %s\n", orNA(info.Gender))
		}
		if len(record.MedicalHistory) > 0 {
			b.WriteString("\n🏥 KNOWN MEDICAL CONDITIONS (CRITICAL):\n")
			for _, condition := range record.MedicalHistory {
				fmt.Fprintf(&b, "   • %s\n", condition)
			}
		}
		if len(record.Medications) > 0 {
			b.WriteString("\n💊 CURRENT MEDICATIONS (Check for interactions):\n")
			for _, med := range record.Medications {
				fmt.Fprintf(&b, "   • %s\n", med)
			}
		}
		if len(record.Allergies) > 0 {
			b.WriteString("\n🚨 ALLERGIES (NEVER recommend these):\n")
			for _, allergy := range record.Allergies {
				fmt.Fprintf(&b, "   • %s\n", allergy)
			}
		}
		if len(record.PreviousVisits) > 0 {
			b.WriteString("\n📋 RECENT VISIT HISTORY:\n")
			for _, visit := range lastN(record.PreviousVisits, 5) {
				fmt.Fprintf(&b, "   • %s\n", visit)
			}
		}
		if len(record.VitalSigns) > 0 {
			b.WriteString("\n📊 LAST RECORDED VITALS:\n")
			for _, key := range sortedKeys(record.VitalSigns) {
				fmt.Fprintf(&b, "   • %s: %s\n", key, record.VitalSigns[key])
			}
		}
	}

	b.WriteString("\n" + divider + "\n")
	b.WriteString("⚠️ INSTRUCTIONS: Always consider this patient's history when giving advice.\n")
	b.WriteString("   - Check allergies before recommending any medication\n")
	b.WriteString("   - Consider existing conditions and current medications\n")
	b.WriteString("   - Reference their history when relevant to build trust\n")
	b.WriteString(divider + "\n")
	return b.String()
}

// biomarkerBlock lists the report's top priorities as a numbered list.
func biomarkerBlock(report *biomarker.Report, lang language.Code) string {
	summary := report.ExecutiveSummary
	var b strings.Builder
	if lang == language.Arabic {
		b.WriteString("\n\n📊 معلومات تقرير المختبر:\n")
		if summary != nil && len(summary.TopPriorities) > 0 {
			b.WriteString("🎯 الأولويات الصحية الرئيسية:\n")
			for i, priority := range summary.TopPriorities {
				fmt.Fprintf(&b, "%d. %s\n", i+1, priority)
			}
		}
	} else {
		b.WriteString("\n\n📊 LAB REPORT INFORMATION:\n")
		if summary != nil && len(summary.TopPriorities) > 0 {
			b.WriteString("🎯 Top Health Priorities:\n")
			for i, priority := range summary.TopPriorities {
				fmt.Fprintf(&b, "%d. %s\n", i+1, priority)
			}
		}
	}
	return b.String()
}

func lastN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
