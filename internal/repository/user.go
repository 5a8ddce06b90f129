package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"gorm.io/gorm"
)

var ErrUserAlreadyExists = errors.New("user already exists")

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, userId string) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %s", userId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (ur UserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	ur.logger.Debugf("Get user by email: %s", email)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (ur UserRepository) GetByProfessorID(ctx context.Context, tx *gorm.DB, professorId string) (*model.User, error) {
	ur.logger.Debugf("Get user by professor id: %s", professorId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where("professor_id = ?", professorId).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// FindProfessorByName matches a course history display name against professor accounts.
// The last two words of the display name are taken as the last name.
func (ur UserRepository) FindProfessorByName(ctx context.Context, tx *gorm.DB, displayName string) (*model.User, error) {
	ur.logger.Debugf("Find professor by name: %s", displayName)

	words := strings.Fields(displayName)
	if len(words) < 2 {
		return nil, gorm.ErrRecordNotFound
	}
	lastName := strings.Join(words[len(words)-2:], " ")

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Model(&model.User{}).
		Where("user_type = ?", constant.UserTypeProfessor).
		Where("last_name ILIKE ?", lastName).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (ur UserRepository) List(ctx context.Context, tx *gorm.DB, userType constant.UserType, page, pageSize uint) ([]model.User, int64, error) {
	ur.logger.Debugf("List users with type: %s", userType)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.User{})
	if userType != "" {
		query = query.Where("user_type = ?", userType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := query.Order("last_name, first_name").Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (ur *UserRepository) Create(ctx context.Context, tx *gorm.DB, newUser *model.User) error {
	ur.logger.Debugf("Create user with email: %s", newUser.Email)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if newUser.UserType == "" {
		newUser.UserType = constant.UserTypeStudent
	}

	return db.WithContext(ctx).Model(&model.User{}).Create(newUser).Error
}

// CheckDupAndCreate creates the user unless the email is taken.
func (ur *UserRepository) CheckDupAndCreate(ctx context.Context, tx *gorm.DB, newUser *model.User) error {
	ur.logger.Debugf("Check duplicate and create user with email: %s", newUser.Email)

	db := ur.getDB(tx)
	return ur.withTx(db, func(tx *gorm.DB) error {
		existingUser, err := ur.GetByEmail(ctx, tx, newUser.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existingUser != nil {
			return fmt.Errorf("%w: %s", ErrUserAlreadyExists, existingUser.Email)
		}

		return ur.Create(ctx, tx, newUser)
	})
}

// SetProfessorID links the account to a course history professor id. An empty id unlinks it.
func (ur UserRepository) SetProfessorID(ctx context.Context, tx *gorm.DB, userId string, professorId string) (*model.User, error) {
	ur.logger.Debugf("Set professor id of user %s to %s", userId, professorId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	updates := map[string]interface{}{"professor_id": nil}
	if professorId != "" {
		updates["professor_id"] = professorId
		updates["user_type"] = constant.UserTypeProfessor
	}

	result := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return ur.GetById(ctx, tx, userId)
}
