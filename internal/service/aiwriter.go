package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/docai/flow-studio/internal/errors"
)

// DefaultGenerationDelay matches the original assistant's simulated
// generation time.
const DefaultGenerationDelay = 3 * time.Second

// AIWriterServiceOptions groups dependencies for AIWriterService.
type AIWriterServiceOptions struct {
	// Delay overrides the simulated generation time. Zero means DefaultGenerationDelay.
	Delay time.Duration
}

// AIWriterService produces document drafts. There is no model behind
// it: generation is a fixed delay followed by a canned draft for the
// requested document type, faithful to the demo assistant this service
// replaces.
type AIWriterService struct {
	delay time.Duration
}

// NewAIWriterService constructs a new AIWriterService.
func NewAIWriterService(opts AIWriterServiceOptions) *AIWriterService {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultGenerationDelay
	}
	return &AIWriterService{delay: delay}
}

// GenerateInput groups parameters for a generation request.
type GenerateInput struct {
	Prompt       string
	DocumentType string
}

// GenerateResult contains the generated draft.
type GenerateResult struct {
	DocumentType string
	Content      string
}

// Generate validates the request, waits the simulated generation time,
// and returns the canned draft. The wait is context-aware: if the
// client goes away before the delay elapses no result is produced.
func (s *AIWriterService) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, apperrors.ValidationField("prompt", "Prompt is required.")
	}
	docType := strings.ToLower(strings.TrimSpace(input.DocumentType))
	content, ok := cannedDrafts[docType]
	if !ok {
		return nil, apperrors.ValidationField("document_type",
			fmt.Sprintf("Document type must be one of: %s.", strings.Join(DocumentTypes(), ", ")))
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &GenerateResult{
		DocumentType: docType,
		Content:      content,
	}, nil
}

// DocumentTypes lists the supported generation targets in menu order.
func DocumentTypes() []string {
	return []string{
		"cover-letter",
		"resume-summary",
		"business-proposal",
		"email",
		"contract",
		"job-description",
	}
}

var cannedDrafts = map[string]string{
	"cover-letter": `Dear Hiring Manager,

I am writing to express my strong interest in the Senior Software Engineer position at Microsoft. With over 6 years of experience developing scalable web applications and cloud-based solutions, I am excited about the opportunity to contribute to Microsoft's innovative projects.

In my current role at TechCorp, I have led the development of several high-impact applications using React and Node.js, serving over 100,000 active users. My expertise includes:

• Frontend Development: Proficient in React, TypeScript, and modern JavaScript frameworks
• Backend Development: Extensive experience with Node.js, Express, and RESTful API design
• Cloud Technologies: Hands-on experience with Azure, AWS, and containerization using Docker
• Team Leadership: Successfully mentored junior developers and led cross-functional teams

I am particularly drawn to Microsoft's commitment to innovation and its impact on technology worldwide. I believe my technical skills and passion for creating user-centric solutions would be valuable additions to your engineering team.

Thank you for considering my application. I look forward to discussing how my experience can contribute to Microsoft's continued success.

Best regards,
[Your Name]`,

	"resume-summary": `Results-driven professional with 5+ years of experience delivering measurable impact across product and engineering teams. Skilled at translating business goals into shipped features, backed by a strong foundation in data analysis and cross-functional collaboration. Recognized for clear communication, ownership, and a track record of raising the quality bar on every team.`,

	"business-proposal": `Executive Summary

This proposal outlines a phased plan to design, build, and launch the requested project. Phase one covers discovery and requirements (2 weeks), phase two covers implementation and iterative review (6 weeks), and phase three covers launch preparation and handover (2 weeks).

Deliverables include a production-ready application, documentation, and a 30-day post-launch support window. The estimated budget is detailed in the attached schedule and is inclusive of all development, testing, and project management costs.

We welcome the opportunity to discuss scope and timeline adjustments to best fit your goals.`,

	"email": `Subject: Following Up

Hi [Name],

I hope this message finds you well. I wanted to follow up on our recent conversation and share the next steps we discussed. Please let me know if the proposed timeline works on your end, or if there is anything you would like me to adjust.

Looking forward to hearing from you.

Best regards,
[Your Name]`,

	"contract": `SERVICES AGREEMENT

This Services Agreement ("Agreement") is entered into as of the date of last signature by and between the Client and the Provider.

1. Services. The Provider agrees to perform the services described in Exhibit A.
2. Compensation. The Client agrees to pay the fees set out in Exhibit B within 30 days of invoice.
3. Term and Termination. Either party may terminate this Agreement with 30 days' written notice.
4. Confidentiality. Each party agrees to keep the other party's non-public information confidential.

IN WITNESS WHEREOF, the parties have executed this Agreement as of the date first written above.`,

	"job-description": `About the Role

We are looking for a motivated professional to join our growing team. In this role you will own projects end to end, collaborate closely with stakeholders, and contribute to a culture of craftsmanship and continuous improvement.

Responsibilities
• Deliver high-quality work on schedule
• Partner with cross-functional teams to refine requirements
• Mentor teammates and share knowledge openly

Requirements
• 3+ years of relevant experience
• Strong written and verbal communication skills
• A portfolio of shipped work you are proud of`,
}
