package docs

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout formats the meeting date in titles and headings.
const DateLayout = "2006-01-02"

const documentURLFormat = "https://docs.google.com/document/d/%s/edit"

// PartnerName returns the local part of an email address.
func PartnerName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Title returns "1on1 - <date> - <local part of collaboratorEmail>".
func Title(date time.Time, collaboratorEmail string) string {
	return fmt.Sprintf("1on1 - %s - %s", date.Format(DateLayout), PartnerName(collaboratorEmail))
}

// Body returns the initial document content. The headings are fixed and
// always Japanese.
func Body(date time.Time, operator, partner string) string {
	return fmt.Sprintf("# %s * %s * %s\n\n## 話したいこと\n\n- \n\n## メモ\n\n",
		date.Format(DateLayout), operator, partner)
}

// DocumentURL returns the edit URL of a document.
func DocumentURL(documentID string) string {
	return fmt.Sprintf(documentURLFormat, documentID)
}
