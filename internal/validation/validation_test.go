package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "player@example.com", false},
		{"valid with plus", "player+tag@example.co.uk", false},
		{"empty", "", true},
		{"missing at", "playerexample.com", true},
		{"missing domain", "player@", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "hunter22", false},
		{"minimum length", "abcd", false},
		{"too short", "abc", true},
		{"too long", "abcdefghijklmnopqrstu", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "scamspotter", false},
		{"too short", "ab", true},
		{"too long", "abcdefghijklmnopqrstu", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid", "spotting-phishing-emails", false},
		{"digits", "top-10-scams", false},
		{"uppercase", "Spotting-Scams", true},
		{"spaces", "spotting scams", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuizQuestion(t *testing.T) {
	validOptions := []string{"Ignore it", "Click the link", "Reply with your password"}

	tests := []struct {
		name         string
		question     string
		options      []string
		correctIndex int
		explanation  string
		wantErr      bool
	}{
		{"valid", "You receive an email asking for your bank PIN. What do you do?", validOptions, 0, "Banks never ask for your PIN.", false},
		{"question too short", "Short?", validOptions, 0, "Banks never ask for your PIN.", true},
		{"wrong option count", "You receive an email asking for your bank PIN. What do you do?", []string{"A", "B"}, 0, "Banks never ask for your PIN.", true},
		{"empty option", "You receive an email asking for your bank PIN. What do you do?", []string{"A", "", "C"}, 0, "Banks never ask for your PIN.", true},
		{"index out of range", "You receive an email asking for your bank PIN. What do you do?", validOptions, 3, "Banks never ask for your PIN.", true},
		{"negative index", "You receive an email asking for your bank PIN. What do you do?", validOptions, -1, "Banks never ask for your PIN.", true},
		{"explanation too short", "You receive an email asking for your bank PIN. What do you do?", validOptions, 1, "No.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuizQuestion(tt.question, tt.options, tt.correctIndex, tt.explanation)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuizQuestion() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateInfoPage(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		slug        string
		description string
		body        string
		wantErr     bool
	}{
		{"valid", "Phishing Basics", "phishing-basics", "How to recognise a phishing email.", "Phishing emails try to trick you into revealing credentials.", false},
		{"title too short", "Ph", "phishing-basics", "How to recognise a phishing email.", "Phishing emails try to trick you.", true},
		{"bad slug", "Phishing Basics", "Phishing Basics", "How to recognise a phishing email.", "Phishing emails try to trick you.", true},
		{"description too short", "Phishing Basics", "phishing-basics", "Short", "Phishing emails try to trick you.", true},
		{"body too short", "Phishing Basics", "phishing-basics", "How to recognise a phishing email.", "Short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInfoPage(tt.title, tt.slug, tt.description, tt.body)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInfoPage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
