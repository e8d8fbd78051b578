package respond

import "strings"

// Static answers for questions whose content never changes. Kept as
// constants so the transports and tests share the exact wording.

// PlacementStartInfo answers "when do placements start".
const PlacementStartInfo = "Placements generally start from the 5th semester onwards. " +
	"Keep an eye on the placement cell notifications for exact dates and company visits!"

// ExamRegistrationInfo walks through F grade (backlog) registration.
const ExamRegistrationInfo = "Here is the process for F Grade (Backlog/Makeup) Registration:\n\n" +
	"1. Open Contineo\n" +
	"2. Login with your USN and DOB\n" +
	"3. Click on 'F Grade Registration'\n" +
	"4. **Note:** Registration is a one-time activity.\n" +
	"5. Verify the failed course list before registration.\n" +
	"6. If you are not getting a failed course, kindly contact the SDSC office.\n" +
	"7. After selecting all the courses, submit the data.\n" +
	"8. You can click 'DELETE' under 'Pending Transactions' to edit registrations *before* approval.\n" +
	"9. If registrations are approved by SDSC, you cannot edit them.\n" +
	"10. Download the PDF and pay the fees through the SIS portal.\n" +
	"11. After fee payment, submit a copy of the receipt and PDF to the Exam Section (North/South as applicable).\n" +
	"12. The SDSC office will then approve the registration."

const lostIDCardInfo = "Here is the process for a lost ID card:\n\n" +
	"1. Log in to the SIS portal.\n" +
	"2. Select the 'lost ID card' option.\n" +
	"3. Pay the mentioned fees online.\n" +
	"4. Download the payment receipt PDF.\n" +
	"5. Submit the receipt to the college office."

const lostHallTicketInfo = "Here is the process for a lost hall ticket:\n\n" +
	"1. Log in to the SIS portal.\n" +
	"2. Select the 'lost hall ticket' option.\n" +
	"3. Pay the mentioned fees online.\n" +
	"4. Download the payment receipt PDF.\n" +
	"5. Submit the receipt to the college office."

// LostItemInfo picks the right walkthrough for a lost item. Anything
// that is not a hall ticket is treated as an ID card, matching how
// students actually ask.
func LostItemInfo(item string) string {
	if strings.Contains(strings.ToLower(item), "hall ticket") {
		return lostHallTicketInfo
	}
	return lostIDCardInfo
}

// StudentPortalInfo points at the SIS portal.
const StudentPortalInfo = "You can access the student portal (SIS) for attendance, marks, fee payments " +
	"and registrations. Log in with your USN and date of birth. If your login is not working, " +
	"contact the college office."

// Conversational pre-filter replies.
const (
	GreetingReply = "Hello! How can I help you today?"
	ThanksReply   = "You're welcome! Let me know if you need anything else."
	ByeReply      = "Goodbye!"
)

// Side-action prompts and closers.
const (
	// SpellOutNameReply follows a rejected fuzzy name match.
	SpellOutNameReply = "My apologies. Could you please spell out the name?"

	// FacultyNotFoundReply is the terminal reply when a name matches nothing.
	FacultyNotFoundReply = "I'm sorry, I couldn't find a faculty member by that name."

	// DetailsDeclinedReply closes the conversation after a declined details offer.
	DetailsDeclinedReply = "Alright! Let me know if you need anything else."

	// HODDepartmentPrompt asks which department's head is meant.
	HODDepartmentPrompt = "Which department's HOD are you asking about?"
)

// ConfirmFacultyName asks whether a single fuzzy match is the person
// the user meant.
func ConfirmFacultyName(suggestedName string) string {
	return "I found " + bold(suggestedName) + ". Did you mean this person?"
}
