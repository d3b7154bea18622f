package models

// Category is a topic label assigned to a chunk.
type Category string

const (
	CategorySiteAssessment          Category = "site-assessment"
	CategoryEnvironmentalMonitoring Category = "environmental-monitoring"
	CategoryGreenBuilding           Category = "green-building"
	CategoryContaminationDetection  Category = "contamination-detection"
	CategoryAirQuality              Category = "air-quality"
	CategorySoilTesting             Category = "soil-testing"
	CategoryGroundwater             Category = "groundwater"
	CategoryCompanyInfo             Category = "company-info"
	CategoryGeneral                 Category = "general"
)

// Chunk is one overlapping word window of a page, the unit of output.
type Chunk struct {
	ID          string   `json:"id"`
	SourceURL   string   `json:"source_url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ChunkIndex  int      `json:"chunk_index"`
	TotalChunks int      `json:"total_chunks"`
	Category    Category `json:"category"`
}

// Corpus is every chunk of a run in page order, then chunk order.
type Corpus []Chunk
