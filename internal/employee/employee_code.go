package employee

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// NewEmpCode builds an employee code from the company name initials and a
// six digit random number, e.g. "Acme Tools" -> "EMP-AT483920". Uniqueness
// per company is enforced by the database index; a collision surfaces as a
// duplicate-code error from the create path.
func NewEmpCode(companyName string) string {
	var initials strings.Builder
	for _, word := range strings.Fields(companyName) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				initials.WriteRune(unicode.ToUpper(r))
			}
			break
		}
	}

	n := 100000 + rand.Intn(900000)
	return fmt.Sprintf("EMP-%s%d", initials.String(), n)
}
