package hudu

import (
	"net/url"
	"strconv"
	"time"
)

// Resource contains fields common to persisted Hudu resources.
type Resource struct {
	ID        int       `json:"id"                   yaml:"id"`
	Slug      string    `json:"slug,omitempty"       yaml:"slug,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// APIInfo represents the api_info response.
type APIInfo struct {
	Version string `json:"version" yaml:"version"`
	Date    string `json:"date"    yaml:"date"`
}

// ActivityLog represents one activity log entry.
type ActivityLog struct {
	Resource

	UserID        int    `json:"user_id"                  yaml:"user_id"`
	UserEmail     string `json:"user_email"               yaml:"user_email"`
	ResourceID    int    `json:"resource_id,omitempty"    yaml:"resource_id,omitempty"`
	ResourceType  string `json:"resource_type,omitempty"  yaml:"resource_type,omitempty"`
	ActionMessage string `json:"action_message"           yaml:"action_message"`
	IPAddress     string `json:"ip_address,omitempty"     yaml:"ip_address,omitempty"`
	UserAgent     string `json:"user_agent,omitempty"     yaml:"user_agent,omitempty"`
}

// ActivityLogFilter filters activity log listings. ResourceID and
// ResourceType must be supplied together; the API cannot resolve one
// without the other.
type ActivityLogFilter struct {
	UserID        int
	UserEmail     string
	ResourceID    int
	ResourceType  string
	ActionMessage string
	StartDate     time.Time
}

// Validate checks the resource id/type pairing.
func (f *ActivityLogFilter) Validate() error {
	if f == nil {
		return nil
	}

	if (f.ResourceID != 0) != (f.ResourceType != "") {
		return ErrResourceFilterPair
	}

	return nil
}

// Values serializes the set filters as query parameters.
func (f *ActivityLogFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.UserID != 0 {
		values.Set("user_id", strconv.Itoa(f.UserID))
	}

	if f.UserEmail != "" {
		values.Set("user_email", f.UserEmail)
	}

	if f.ResourceID != 0 {
		values.Set("resource_id", strconv.Itoa(f.ResourceID))
	}

	if f.ResourceType != "" {
		values.Set("resource_type", f.ResourceType)
	}

	if f.ActionMessage != "" {
		values.Set("action_message", f.ActionMessage)
	}

	if !f.StartDate.IsZero() {
		// The API wants ISO 8601.
		values.Set("start_date", f.StartDate.Format(time.RFC3339))
	}

	return values
}

// Article represents a knowledge-base article.
type Article struct {
	Resource

	Name          string `json:"name"                     yaml:"name"`
	Content       string `json:"content"                  yaml:"content"`
	EnableSharing bool   `json:"enable_sharing"           yaml:"enable_sharing"`
	FolderID      *int   `json:"folder_id,omitempty"      yaml:"folder_id,omitempty"`
	CompanyID     *int   `json:"company_id,omitempty"     yaml:"company_id,omitempty"`
	Archived      bool   `json:"archived,omitempty"       yaml:"archived,omitempty"`
	URL           string `json:"url,omitempty"            yaml:"url,omitempty"`
	ShareURL      string `json:"sharing_url,omitempty"    yaml:"sharing_url,omitempty"`
}

// ArticleFilter filters article listings.
type ArticleFilter struct {
	Name      string
	CompanyID int
	Draft     *bool
}

// Values serializes the set filters as query parameters.
func (f *ArticleFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.Name != "" {
		values.Set("name", f.Name)
	}

	if f.CompanyID != 0 {
		values.Set("company_id", strconv.Itoa(f.CompanyID))
	}

	if f.Draft != nil {
		values.Set("draft", strconv.FormatBool(*f.Draft))
	}

	return values
}

// ArticleCreateRequest represents a request to create an article.
type ArticleCreateRequest struct {
	// Name is the article title.
	Name string `json:"name"`
	// Content is the article body (HTML).
	Content string `json:"content"`
	// EnableSharing publishes a public share link; nil keeps the server default.
	EnableSharing *bool `json:"enable_sharing,omitempty"`
	// FolderID files the article under a folder.
	FolderID *int `json:"folder_id,omitempty"`
	// CompanyID scopes the article to one company; nil makes it global.
	CompanyID *int `json:"company_id,omitempty"`
}

// ArticleUpdateRequest represents a request to update an article. The
// API requires name and content on every update.
type ArticleUpdateRequest struct {
	Name          string `json:"name"`
	Content       string `json:"content"`
	EnableSharing *bool  `json:"enable_sharing,omitempty"`
	FolderID      *int   `json:"folder_id,omitempty"`
	CompanyID     *int   `json:"company_id,omitempty"`
}

// Company represents a company.
type Company struct {
	Resource

	Name        string `json:"name"                   yaml:"name"`
	Nickname    string `json:"nickname,omitempty"     yaml:"nickname,omitempty"`
	Website     string `json:"website,omitempty"      yaml:"website,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Notes       string `json:"notes,omitempty"        yaml:"notes,omitempty"`
}

// CompanyFilter filters company listings.
type CompanyFilter struct {
	Name   string
	Search string
}

// Values serializes the set filters as query parameters.
func (f *CompanyFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.Name != "" {
		values.Set("name", f.Name)
	}

	if f.Search != "" {
		values.Set("search", f.Search)
	}

	return values
}

// Asset layout field types supported by Hudu.
const (
	FieldTypeText      = "Text"
	FieldTypeRichText  = "RichText"
	FieldTypeHeading   = "Heading"
	FieldTypeCheckBox  = "CheckBox"
	FieldTypeWebsite   = "Website"
	FieldTypePassword  = "Password"
	FieldTypeEmail     = "Email"
	FieldTypeNumber    = "Number"
	FieldTypeDate      = "Date"
	FieldTypeDropdown  = "Dropdown"
	FieldTypeEmbed     = "Embed"
	FieldTypePhone     = "Phone"
	FieldTypeAssetLink = "AssetLink"
	FieldTypeAssetTag  = "AssetTag"
)

// LayoutField describes one field of an asset layout.
type LayoutField struct {
	ID         int    `json:"id,omitempty"          yaml:"id,omitempty"`
	Label      string `json:"label"                 yaml:"label"`
	ShowInList bool   `json:"show_in_list"          yaml:"show_in_list"`
	Required   bool   `json:"required"              yaml:"required"`
	FieldType  string `json:"field_type"            yaml:"field_type"`
	Min        *int   `json:"min,omitempty"         yaml:"min,omitempty"`
	Max        *int   `json:"max,omitempty"         yaml:"max,omitempty"`
	Hint       string `json:"hint,omitempty"        yaml:"hint,omitempty"`
	Options    string `json:"options,omitempty"     yaml:"options,omitempty"`
	Position   *int   `json:"position,omitempty"    yaml:"position,omitempty"`
	Expiration bool   `json:"expiration,omitempty"  yaml:"expiration,omitempty"`
	// LinkableID ties AssetLink/AssetTag fields to a target layout.
	LinkableID *int `json:"linkable_id,omitempty" yaml:"linkable_id,omitempty"`
}

// AssetLayout represents an asset layout.
type AssetLayout struct {
	Resource

	Name             string        `json:"name"                        yaml:"name"`
	Icon             string        `json:"icon"                        yaml:"icon"`
	Color            string        `json:"color"                       yaml:"color"`
	IconColor        string        `json:"icon_color"                  yaml:"icon_color"`
	IncludePasswords bool          `json:"include_passwords,omitempty" yaml:"include_passwords,omitempty"`
	IncludePhotos    bool          `json:"include_photos,omitempty"    yaml:"include_photos,omitempty"`
	IncludeComments  bool          `json:"include_comments,omitempty"  yaml:"include_comments,omitempty"`
	IncludeFiles     bool          `json:"include_files,omitempty"     yaml:"include_files,omitempty"`
	PasswordTypes    string        `json:"password_types,omitempty"    yaml:"password_types,omitempty"`
	Active           bool          `json:"active,omitempty"            yaml:"active,omitempty"`
	Fields           []LayoutField `json:"fields,omitempty"            yaml:"fields,omitempty"`
}

// AssetLayoutFilter filters asset layout listings.
type AssetLayoutFilter struct {
	Name string
}

// Values serializes the set filters as query parameters.
func (f *AssetLayoutFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.Name != "" {
		values.Set("name", f.Name)
	}

	return values
}

// AssetLayoutCreateRequest represents a request to create an asset layout.
type AssetLayoutCreateRequest struct {
	Name             string        `json:"name"`
	Icon             string        `json:"icon"`
	Color            string        `json:"color"`
	IconColor        string        `json:"icon_color"`
	Fields           []LayoutField `json:"fields"`
	IncludePasswords *bool         `json:"include_passwords,omitempty"`
	IncludePhotos    *bool         `json:"include_photos,omitempty"`
	IncludeComments  *bool         `json:"include_comments,omitempty"`
	IncludeFiles     *bool         `json:"include_files,omitempty"`
	PasswordTypes    *string       `json:"password_types,omitempty"`
}

// AssetLayoutUpdateRequest represents a request to update an asset
// layout. The API requires the full layout on update.
type AssetLayoutUpdateRequest AssetLayoutCreateRequest

// AssetField is one custom-field value on an asset.
type AssetField struct {
	Label string      `json:"label"           yaml:"label"`
	Value interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// Asset represents an asset.
type Asset struct {
	Resource

	CompanyID           int          `json:"company_id"                     yaml:"company_id"`
	AssetLayoutID       int          `json:"asset_layout_id"                yaml:"asset_layout_id"`
	Name                string       `json:"name"                           yaml:"name"`
	PrimarySerial       string       `json:"primary_serial,omitempty"       yaml:"primary_serial,omitempty"`
	PrimaryMail         string       `json:"primary_mail,omitempty"         yaml:"primary_mail,omitempty"`
	PrimaryModel        string       `json:"primary_model,omitempty"        yaml:"primary_model,omitempty"`
	PrimaryManufacturer string       `json:"primary_manufacturer,omitempty" yaml:"primary_manufacturer,omitempty"`
	Archived            bool         `json:"archived,omitempty"             yaml:"archived,omitempty"`
	Fields              []AssetField `json:"fields,omitempty"               yaml:"fields,omitempty"`
}

// AssetFilter filters asset listings.
type AssetFilter struct {
	CompanyID     int
	ID            int
	Name          string
	PrimarySerial string
	AssetLayoutID int
	Archived      *bool
}

// CompanyOnly reports whether the filter names a company and nothing
// else, in which case the company-scoped endpoint serves the listing.
func (f *AssetFilter) CompanyOnly() bool {
	if f == nil {
		return false
	}

	return f.CompanyID != 0 && f.ID == 0 && f.Name == "" &&
		f.PrimarySerial == "" && f.AssetLayoutID == 0
}

// Values serializes the set filters as query parameters.
func (f *AssetFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.CompanyID != 0 {
		values.Set("company_id", strconv.Itoa(f.CompanyID))
	}

	if f.ID != 0 {
		values.Set("id", strconv.Itoa(f.ID))
	}

	if f.Name != "" {
		values.Set("name", f.Name)
	}

	if f.PrimarySerial != "" {
		values.Set("primary_serial", f.PrimarySerial)
	}

	if f.AssetLayoutID != 0 {
		values.Set("asset_layout_id", strconv.Itoa(f.AssetLayoutID))
	}

	if f.Archived != nil {
		values.Set("archived", strconv.FormatBool(*f.Archived))
	}

	return values
}

// CompanyAssetFilter filters company-scoped asset listings.
type CompanyAssetFilter struct {
	Archived *bool
}

// Values serializes the set filters as query parameters.
func (f *CompanyAssetFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.Archived != nil {
		values.Set("archived", strconv.FormatBool(*f.Archived))
	}

	return values
}

// AssetCreateRequest represents a request to create an asset.
type AssetCreateRequest struct {
	AssetLayoutID       int     `json:"asset_layout_id"`
	Name                string  `json:"name"`
	PrimarySerial       *string `json:"primary_serial,omitempty"`
	PrimaryMail         *string `json:"primary_mail,omitempty"`
	PrimaryModel        *string `json:"primary_model,omitempty"`
	PrimaryManufacturer *string `json:"primary_manufacturer,omitempty"`
	// CustomFields maps field labels to values; keys are sent as-is on
	// create.
	CustomFields map[string]interface{} `json:"custom_fields,omitempty"`
}

// AssetUpdateRequest represents a request to update an asset.
//
// The API requires name and asset_layout_id on every update; when
// either is nil the client fetches the current asset and fills them
// in. CustomFields keys are normalized (lower-cased, spaces replaced
// with underscores) before transmission.
type AssetUpdateRequest struct {
	AssetLayoutID       *int                   `json:"asset_layout_id,omitempty"`
	Name                *string                `json:"name,omitempty"`
	PrimarySerial       *string                `json:"primary_serial,omitempty"`
	PrimaryMail         *string                `json:"primary_mail,omitempty"`
	PrimaryModel        *string                `json:"primary_model,omitempty"`
	PrimaryManufacturer *string                `json:"primary_manufacturer,omitempty"`
	CustomFields        map[string]interface{} `json:"custom_fields,omitempty"`
}

// AssetWithPasswords is the composite read of one asset plus the
// passwords attached to it.
type AssetWithPasswords struct {
	Data      *Asset          `json:"data"      yaml:"data"`
	Passwords []AssetPassword `json:"passwords" yaml:"passwords"`
}

// AssetPassword represents a stored password.
type AssetPassword struct {
	Resource

	Name             string `json:"name"                         yaml:"name"`
	Username         string `json:"username"                     yaml:"username"`
	Password         string `json:"password"                     yaml:"password"`
	CompanyID        int    `json:"company_id"                   yaml:"company_id"`
	Description      string `json:"description,omitempty"        yaml:"description,omitempty"`
	PasswordableType string `json:"passwordable_type,omitempty"  yaml:"passwordable_type,omitempty"`
	// PasswordableID is the id of the parent asset, when the password
	// is attached to one.
	PasswordableID   int    `json:"passwordable_id,omitempty"    yaml:"passwordable_id,omitempty"`
	OTPSecret        string `json:"otp_secret,omitempty"         yaml:"otp_secret,omitempty"`
	URL              string `json:"url,omitempty"                yaml:"url,omitempty"`
	PasswordType     string `json:"password_type,omitempty"      yaml:"password_type,omitempty"`
	PasswordFolderID int    `json:"password_folder_id,omitempty" yaml:"password_folder_id,omitempty"`
	InPortal         bool   `json:"in_portal,omitempty"          yaml:"in_portal,omitempty"`
}

// AssetPasswordFilter filters password listings.
type AssetPasswordFilter struct {
	Name      string
	CompanyID int
	Slug      string
	Search    string
}

// Values serializes the set filters as query parameters.
func (f *AssetPasswordFilter) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.Name != "" {
		values.Set("name", f.Name)
	}

	if f.CompanyID != 0 {
		values.Set("company_id", strconv.Itoa(f.CompanyID))
	}

	if f.Slug != "" {
		values.Set("slug", f.Slug)
	}

	if f.Search != "" {
		values.Set("search", f.Search)
	}

	return values
}

// AssetPasswordCreateRequest represents a request to create a password.
type AssetPasswordCreateRequest struct {
	Name             string  `json:"name"`
	Username         string  `json:"username"`
	Password         string  `json:"password"`
	CompanyID        int     `json:"company_id"`
	Description      *string `json:"description,omitempty"`
	PasswordableType *string `json:"passwordable_type,omitempty"`
	PasswordableID   *int    `json:"passwordable_id,omitempty"`
	OTPSecret        *string `json:"otp_secret,omitempty"`
	URL              *string `json:"url,omitempty"`
	PasswordType     *string `json:"password_type,omitempty"`
	PasswordFolderID *int    `json:"password_folder_id,omitempty"`
	InPortal         *bool   `json:"in_portal,omitempty"`
	Slug             *string `json:"slug,omitempty"`
}
