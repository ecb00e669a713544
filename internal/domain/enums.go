package domain

// ImageContentType is the content type of every stored variant.
const ImageContentType = "image/jpeg"

// ImageExtension is appended to every generated object key.
const ImageExtension = ".jpg"

// Variant names one of the three stored renditions of an upload.
type Variant string

const (
	VariantOriginal  Variant = "original"
	VariantDisplay   Variant = "display"
	VariantThumbnail Variant = "thumbnail"
)

// ArticleOrdering is an allowed sort order for article listings.
type ArticleOrdering string

const (
	OrderByCreatedAt     ArticleOrdering = "created_at"
	OrderByCreatedAtDesc ArticleOrdering = "-created_at"
	OrderByID            ArticleOrdering = "id"
	OrderByIDDesc        ArticleOrdering = "-id"
)

// ValidArticleOrderings lists the orderings accepted by the article listing.
var ValidArticleOrderings = map[ArticleOrdering]bool{
	OrderByCreatedAt:     true,
	OrderByCreatedAtDesc: true,
	OrderByID:            true,
	OrderByIDDesc:        true,
}

// SQL returns the ORDER BY clause for the ordering.
func (o ArticleOrdering) SQL() string {
	switch o {
	case OrderByCreatedAtDesc:
		return "created_at DESC, id DESC"
	case OrderByID:
		return "id ASC"
	case OrderByIDDesc:
		return "id DESC"
	default:
		return "created_at ASC, id ASC"
	}
}
