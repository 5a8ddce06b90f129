package issuer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeCourses struct {
	byProfessor map[string][]model.CourseHistory
}

func (f *fakeCourses) GetByProfessorID(ctx context.Context, tx *gorm.DB, professorId string) ([]model.CourseHistory, error) {
	return f.byProfessor[professorId], nil
}

type fakeTemplates struct {
	templates map[string]*model.CertificateTemplate
}

func (f *fakeTemplates) GetById(ctx context.Context, tx *gorm.DB, templateId string) (*model.CertificateTemplate, error) {
	t, ok := f.templates[templateId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTemplates) GetDefault(ctx context.Context, tx *gorm.DB) (*model.CertificateTemplate, error) {
	for _, t := range f.templates {
		if t.IsDefault && t.IsActive {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCertificates struct {
	mu    sync.Mutex
	certs map[string]model.GeneratedCertificate
	files *fakeFiles
	fail  error
}

func (f *fakeCertificates) Create(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	for _, c := range f.certs {
		if c.VerificationCode == cert.VerificationCode {
			return gorm.ErrDuplicatedKey
		}
	}
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	f.certs[cert.ID] = *cert
	return nil
}

func (f *fakeCertificates) GetById(ctx context.Context, tx *gorm.DB, certificateId string) (*model.GeneratedCertificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.certs[certificateId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if file, ok := f.files.get(c.FileID); ok {
		c.File = file
	}
	return &c, nil
}

func (f *fakeCertificates) GetByVerificationCode(ctx context.Context, tx *gorm.DB, code string) (*model.GeneratedCertificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.certs {
		if c.VerificationCode == code {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCertificates) ReplaceDocument(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.certs[cert.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *cert
	stored.File = model.File{}
	f.certs[cert.ID] = stored
	return nil
}

type fakeFiles struct {
	mu    sync.Mutex
	files map[string]model.File
}

func (f *fakeFiles) Create(ctx context.Context, tx *gorm.DB, file *model.File) (*model.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	f.files[file.ID] = *file
	return file, nil
}

func (f *fakeFiles) Delete(ctx context.Context, tx *gorm.DB, fileId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, fileId)
	return nil
}

func (f *fakeFiles) get(id string) (model.File, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	return file, ok
}

type fakeProfessors struct {
	users []model.User
}

func (f *fakeProfessors) GetByProfessorID(ctx context.Context, tx *gorm.DB, professorId string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ExternalProfessorID() == professorId {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfessors) FindProfessorByName(ctx context.Context, tx *gorm.DB, displayName string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].FullName() == displayName {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeStorage) Put(ctx context.Context, directory, fileName string, data []byte, contentType string) (*model.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := path.Join(directory, fileName)
	f.objects[key] = bytes.Clone(data)
	return &model.File{
		FileName:       fileName,
		UniqueFileName: key,
		BucketName:     "test",
		Size:           int64(len(data)),
		ContentType:    contentType,
	}, nil
}

func (f *fakeStorage) Open(ctx context.Context, file model.File) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[file.UniqueFileName]
	if !ok {
		return nil, fmt.Errorf("object %s not found", file.UniqueFileName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Remove(ctx context.Context, file model.File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[file.UniqueFileName]; !ok {
		return errors.New("object not found")
	}
	delete(f.objects, file.UniqueFileName)
	return nil
}

func (f *fakeStorage) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	deleted []string
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	*(dest.(*model.GeneratedCertificate)) = *(v.(*model.GeneratedCertificate))
	return true, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.entries, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (f *fakeNotifier) CertificateIssued(ctx context.Context, n Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return nil
}
