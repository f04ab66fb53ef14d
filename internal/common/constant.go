// Package common contains shared constants and sentinel errors used across
// EventHub components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Role names guaranteed to exist after bootstrap.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Placeholder references used when a profile picture or event image was not supplied.
const (
	DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"
	DefaultEventImage     = "https://www.hostinger.com/tutorials/wp-content/uploads/sites/2/2021/09/how-to-write-a-blog-post.png"
	DefaultEventCategory  = "uncategorized"
)
