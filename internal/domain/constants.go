package domain

// Enquiry statuses.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusResolved  = "resolved"
)

var EnquiryStatuses = []string{StatusPending, StatusContacted, StatusResolved}

func ValidEnquiryStatus(s string) bool {
	for _, v := range EnquiryStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Notification types.
const (
	NotificationProduct        = "product"
	NotificationProductEnquiry = "product_enquiry"
	NotificationContactEnquiry = "contact_enquiry"
	NotificationCategory       = "category"
	NotificationSubCategory    = "subcategory"
	NotificationNavbarCategory = "navbar_category"
	NotificationInfo           = "info"
	NotificationSuccess        = "success"
	NotificationWarning        = "warning"
	NotificationError          = "error"
)

var NotificationTypes = []string{
	NotificationProduct,
	NotificationProductEnquiry,
	NotificationContactEnquiry,
	NotificationCategory,
	NotificationSubCategory,
	NotificationNavbarCategory,
	NotificationInfo,
	NotificationSuccess,
	NotificationWarning,
	NotificationError,
}

func ValidNotificationType(s string) bool {
	for _, v := range NotificationTypes {
		if v == s {
			return true
		}
	}
	return false
}

// Admin deep links used by enquiry notifications.
const (
	LinkContactEnquiries = "/admin/dashboard/contact-enquiry"
	LinkProductEnquiries = "/admin/dashboard/product-enquiry"
)

const (
	RecentActivityLimit = 5
	NotificationListMax = 50
	ChartWindowDays     = 30
)
