package domain

// Document 是知识库中的一篇文档，运行时只读，仅作为检索候选
type Document struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// 知识库文档的固定分类
const (
	DocumentCategoryIT          = "it"
	DocumentCategoryEngineering = "engineering"
	DocumentCategoryHR          = "hr"
	DocumentCategoryPeople      = "people"
	DocumentCategoryDesign      = "design"
	DocumentCategoryProduct     = "product"
	DocumentCategoryMarketing   = "marketing"
)
