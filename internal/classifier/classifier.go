package classifier

// DocumentType is the classification assigned to a document
type DocumentType string

const (
	BusinessProposal      DocumentType = "business_proposal"
	BusinessReport        DocumentType = "business_report"
	BusinessCommunication DocumentType = "business_communication"
	GeneralDocument       DocumentType = "general_business_document"
)

// Classifier defines the interface for document classification
type Classifier interface {
	// Classify returns the document type for the given text
	Classify(text string) DocumentType
}
