package service

import (
	"time"

	"github.com/lib/pq"

	"github.com/mechgenz/mechgenz-api/internal/models"
)

// DefaultGalleryImages returns the fixed catalog of website image slots.
// Slot IDs are referenced by the public site and must stay stable.
func DefaultGalleryImages() []models.GalleryImage {
	now := time.Now().UTC()
	pexels := func(id string) string {
		return "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg"
	}
	slot := func(id, name, description, photo string, locations pq.StringArray, size, category string) models.GalleryImage {
		url := pexels(photo)
		return models.GalleryImage{
			ID:              id,
			Name:            name,
			Description:     description,
			CurrentURL:      url,
			DefaultURL:      url,
			Locations:       locations,
			RecommendedSize: size,
			Category:        category,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}

	return []models.GalleryImage{
		slot("hero_main_banner", "Main Hero Banner", "Primary hero banner displayed on the homepage",
			"1108101", pq.StringArray{"Homepage Hero", "Main Banner"}, "1920x1080", "hero"),
		slot("about_company_image", "About Company Image", "Image representing our company and values",
			"3184291", pq.StringArray{"About Page", "Company Section"}, "800x600", "about"),
		slot("services_trading", "Trading Services", "Image showcasing our trading and contracting services",
			"906494", pq.StringArray{"Services Page", "Trading Section"}, "600x400", "services"),
		slot("services_contracting", "Contracting Services", "Image representing our contracting and construction services",
			"1216589", pq.StringArray{"Services Page", "Contracting Section"}, "600x400", "services"),
		slot("portfolio_project_1", "Featured Project 1", "Showcase of our premium project work",
			"323780", pq.StringArray{"Portfolio Page", "Featured Projects"}, "800x600", "portfolio"),
		slot("portfolio_project_2", "Featured Project 2", "Another example of our quality work",
			"2219024", pq.StringArray{"Portfolio Page", "Featured Projects"}, "800x600", "portfolio"),
		slot("contact_office_image", "Office Location", "Image of our office location in Doha",
			"380769", pq.StringArray{"Contact Page", "Office Section"}, "600x400", "contact"),
		slot("team_leadership", "Leadership Team", "Photo representing our leadership and management team",
			"3184338", pq.StringArray{"About Page", "Team Section"}, "800x600", "team"),
		slot("logo_main", "MECHGENZ Logo", "Main company logo for branding",
			"3184465", pq.StringArray{"Header", "Footer", "All Pages"}, "300x100", "branding"),
		slot("testimonials_background", "Testimonials Background", "Background image for customer testimonials section",
			"3184339", pq.StringArray{"Homepage", "Testimonials Section"}, "1200x800", "testimonials"),
		slot("trading_machinery", "Trading Machinery", "Heavy machinery and equipment trading showcase",
			"1108099", pq.StringArray{"Trading Page", "Machinery Section"}, "800x600", "trading"),
	}
}
