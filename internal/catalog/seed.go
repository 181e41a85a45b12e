package catalog

import (
	"time"

	"github.com/erazemk/rewear/internal/model"
)

// SeedListings returns the demo listings the catalog starts with, all
// uploaded by the demo user with ID "2".
func SeedListings() []model.Listing {
	return []model.Listing{
		{
			ID:           "1",
			Title:        "Vintage Denim Jacket",
			Description:  "Classic blue denim jacket in excellent condition. Perfect for layering in fall and spring.",
			Category:     "Outerwear",
			Type:         "Jacket",
			Size:         "M",
			Condition:    model.ConditionLikeNew,
			Tags:         []string{"vintage", "denim", "casual"},
			Images:       []string{"https://images.pexels.com/photos/1040945/pexels-photo-1040945.jpeg"},
			UploaderID:   "2",
			UploaderName: "Jane Smith",
			PointValue:   45,
			Available:    true,
			Approved:     true,
			CreatedAt:    time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "2",
			Title:        "Black Wool Coat",
			Description:  "Elegant black wool coat, perfect for winter. Barely worn, high-quality fabric.",
			Category:     "Outerwear",
			Type:         "Coat",
			Size:         "L",
			Condition:    model.ConditionNew,
			Tags:         []string{"wool", "winter", "formal"},
			Images:       []string{"https://images.pexels.com/photos/1536619/pexels-photo-1536619.jpeg"},
			UploaderID:   "2",
			UploaderName: "Jane Smith",
			PointValue:   75,
			Available:    true,
			Approved:     true,
			CreatedAt:    time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "3",
			Title:        "Floral Summer Dress",
			Description:  "Beautiful floral print dress, perfect for summer occasions. Light and comfortable.",
			Category:     "Dresses",
			Type:         "Casual Dress",
			Size:         "S",
			Condition:    model.ConditionGood,
			Tags:         []string{"floral", "summer", "casual"},
			Images:       []string{"https://images.pexels.com/photos/1536619/pexels-photo-1536619.jpeg"},
			UploaderID:   "2",
			UploaderName: "Jane Smith",
			PointValue:   35,
			Available:    true,
			Approved:     true,
			CreatedAt:    time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
		},
	}
}
