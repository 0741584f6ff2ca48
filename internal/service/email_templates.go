package service

import (
	"fmt"
	"html"
)

const verificationSubject = "Verification mail from Diary"

func verificationEmailTemplate(code, username, verifyURL string) (subject, htmlBody, textBody string) {
	htmlBody = fmt.Sprintf(
		"Please enter the code in the verification text box at the verification page : <strong>%s</strong>",
		html.EscapeString(code),
	)

	textBody = fmt.Sprintf(`Hi %s,

Please enter the code in the verification text box at the verification page : %s

Verification page: %s
`, username, code, verifyURL)

	return verificationSubject, htmlBody, textBody
}
