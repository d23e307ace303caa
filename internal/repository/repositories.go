package repository

import "gorm.io/gorm"

// Repositories bundles every gateway over one database handle.
type Repositories struct {
	Users      UserRepository
	Properties PropertyRepository
	Photos     PhotoRepository
	Statuses   StatusRepository
	Inquiries  InquiryRepository
	Likes      LikeRepository
	Comments   CommentRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Properties: NewPropertyRepository(db),
		Photos:     NewPhotoRepository(db),
		Statuses:   NewStatusRepository(db),
		Inquiries:  NewInquiryRepository(db),
		Likes:      NewLikeRepository(db),
		Comments:   NewCommentRepository(db),
	}
}
