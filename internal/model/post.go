package model

// Post mirrors the 'posts' table.
type Post struct {
	ID         int64  `json:"id,omitempty"`
	AutorEmail string `json:"autor_email"`
	AutorNome  string `json:"autor_nome,omitempty"`
	Texto      string `json:"texto,omitempty"`
	ImagemURL  string `json:"imagem_url,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Comentario mirrors the 'comentarios' table.
type Comentario struct {
	ID           int64  `json:"id,omitempty"`
	PostID       int64  `json:"post_id"`
	UsuarioEmail string `json:"usuario_email"`
	UsuarioNome  string `json:"usuario_nome,omitempty"`
	Texto        string `json:"texto"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// FeedPost is a post enriched with engagement counts for the feed
// endpoint. CommentPreview holds at most the 3 most recent comments.
type FeedPost struct {
	Post
	LikeCount      int          `json:"likeCount"`
	CommentCount   int          `json:"commentCount"`
	CommentPreview []Comentario `json:"commentPreview"`
	Curtido        bool         `json:"curtido"`
}
