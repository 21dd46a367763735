package leave

import (
	"bytes"
	"fmt"
	"strings"
)

// Titles for the generated request letter, keyed by subtype tag. Single lookup,
// no conditional chains.
var applicationTitles = map[LeaveType]string{
	LeaveTypeAnnual:  "Annual Leave Application",
	LeaveTypeUnpaid:  "Unpaid Leave Application",
	LeaveTypeMedical: "Medical Leave Application",
}

var orderTitles = map[LeaveType]string{
	LeaveTypeAnnual:  "Annual Leave Order",
	LeaveTypeUnpaid:  "Unpaid Leave Order",
	LeaveTypeMedical: "Medical Leave Order",
}

var resolutionLines = map[ApprovalResolution]string{
	ResolutionApproved:    "Resolution: approved",
	ResolutionRecommend:   "Resolution: recommended for approval",
	ResolutionNoObjection: "Resolution: no objection",
}

// applicationDocumentLines builds the prefilled, unsigned request letter that
// is printed, signed and uploaded back as a PDF.
func applicationDocumentLines(l *LeaveApplication) []string {
	lines := []string{
		applicationTitles[l.LeaveType],
		"",
		"Employee: " + employeeName(l),
		fmt.Sprintf("Period: %s - %s (%d days)",
			l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.DaysCount),
	}
	if l.Reason != "" {
		lines = append(lines, "Reason: "+l.Reason)
	}
	if l.LeaveType == LeaveTypeMedical && l.Diagnosis != nil && *l.Diagnosis != "" {
		lines = append(lines, "Diagnosis: "+*l.Diagnosis)
	}
	if l.LeaveType == LeaveTypeUnpaid && l.ApprovalResolution != nil {
		lines = append(lines, resolutionLines[*l.ApprovalResolution])
	}
	lines = append(lines, "", "Signature: ______________________")
	return lines
}

func orderDocumentLines(l *LeaveApplication) []string {
	lines := []string{
		orderTitles[l.LeaveType],
		"",
	}
	if l.Order != nil {
		lines = append(lines, "Order No: "+l.Order.Number)
	}
	lines = append(lines,
		"Employee: "+employeeName(l),
		fmt.Sprintf("Period: %s - %s (%d days)",
			l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.DaysCount),
		"",
		"Approved by: ______________________",
	)
	return lines
}

func employeeName(l *LeaveApplication) string {
	if l.Employee != nil && l.Employee.FullName != "" {
		return l.Employee.FullName
	}
	return l.EmployeeID.String()
}

func buildDocumentPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Document"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n50 800 Td\n14 TL\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
